package hook

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"hookscope/internal/classify"
	"hookscope/internal/config"
	"hookscope/internal/extract"
	"hookscope/internal/mask"
	"hookscope/internal/rawlog"
	"hookscope/internal/session"
	"hookscope/internal/statefile"
)

// warnCooldown bounds how often the pre-execution waste warning fires
// across all concurrent hook processes of an installation.
const warnCooldown = 30 * time.Second

// Dispatcher wires the hook handlers to their collaborators. One
// dispatcher serves one process; nothing in it is shared in-process.
type Dispatcher struct {
	cfg       *config.Config
	paths     config.Paths
	log       *zap.Logger
	registry  *extract.Registry
	masker    *mask.Masker
	persister *rawlog.Persister
	limiter   *statefile.RateLimiter
}

// NewDispatcher builds a dispatcher for the given project layout.
func NewDispatcher(cfg *config.Config, paths config.Paths, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		paths:     paths,
		log:       log,
		registry:  extract.NewRegistry(),
		masker:    mask.New(),
		persister: rawlog.NewPersister(paths.Logs),
		limiter:   statefile.NewRateLimiter(paths.RateLimitFile()),
	}
}

// PreTool handles the pre-execution hook: an advisory, never-blocking
// warning when the command is known to produce excessive output. The
// exit code is always zero; this system never blocks a tool call.
func (d *Dispatcher) PreTool(in io.Reader, warn io.Writer) {
	ev := ParseEvent(in)
	if ev.Command == "" {
		return
	}

	est, matched := EstimateWaste(ev.Command, d.cfg.Waste)
	if !matched {
		return
	}

	allowed, err := d.limiter.Allow(time.Now(), warnCooldown)
	if err != nil {
		d.log.Warn("rate limiter state write failed", zap.Error(err))
	}
	if !allowed {
		d.log.Debug("waste warning suppressed by cooldown",
			zap.String("pattern", est.Pattern))
		return
	}

	fmt.Fprintf(warn,
		"hookscope: %q tends to produce noisy output (~%d tokens); consider a quiet flag\n",
		est.Pattern, est.Tokens)
}

// PostTool handles the post-execution hook: persist the raw output,
// extract a bounded summary, mask it, record session stats, and emit
// the summary. Every internal failure is logged and swallowed so the
// tool call itself is never affected.
func (d *Dispatcher) PostTool(in io.Reader, out io.Writer) {
	ev := ParseEvent(in)
	if ev.RawOutput == "" {
		return
	}

	// The raw record is always written, regardless of what extraction
	// or masking does afterwards.
	persisted := ev.RawOutput
	if d.cfg.MaskInRaw {
		persisted = d.masker.Apply(persisted)
	}
	if path, err := d.persister.Write(ev.Command, persisted, ev.Timestamp); err != nil {
		d.log.Warn("raw log write failed", zap.Error(err))
	} else {
		d.log.Debug("raw output persisted",
			zap.String("path", path),
			zap.Int("bytes", len(persisted)),
			zap.Int("tokens_est", EstimateTokens(ev.RawOutput)))
	}

	family := classify.Classify(ev.Command)
	result := d.registry.Get(family).Extract(ev.RawOutput, d.cfg.Limits)

	summary := RenderSummary(ev.Command, family, result)
	if d.cfg.MaskSecrets {
		summary = d.masker.Apply(summary)
	}

	if ctx, ok, err := session.Load(d.paths); err != nil {
		d.log.Warn("session load failed", zap.Error(err))
	} else if ok {
		if err := ctx.Record(ev.RawOutput, summary); err != nil {
			d.log.Warn("session stats update failed", zap.Error(err))
		}
	}

	if summary != "" {
		fmt.Fprintln(out, summary)
	}
}

// SessionStart begins a new session: fresh id, pointer file, zeroed
// stats record.
func (d *Dispatcher) SessionStart() {
	ctx, err := session.Begin(d.paths, time.Now())
	if err != nil {
		d.log.Warn("session start failed", zap.Error(err))
		return
	}
	d.log.Info("session started", zap.String("session_id", ctx.ID))
}

// SessionEnd reports the current session's stats and opportunistically
// sweeps expired raw logs. The stats record itself is left in place.
func (d *Dispatcher) SessionEnd(out io.Writer) {
	ctx, ok, err := session.Load(d.paths)
	if err != nil {
		d.log.Warn("session load failed", zap.Error(err))
	} else if ok {
		report, err := ctx.Report()
		if err != nil {
			d.log.Warn("session report failed", zap.Error(err))
		} else {
			fmt.Fprint(out, report)
		}
	}

	d.SweepLogs()
}

// SweepLogs deletes raw logs past the retention window.
func (d *Dispatcher) SweepLogs() {
	deleted, err := rawlog.Sweep(d.paths.Logs, d.cfg.RetentionDays, time.Now())
	if err != nil {
		d.log.Warn("retention sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		d.log.Info("retention sweep", zap.Int("deleted", deleted))
	}
}

// Compact is the session-compaction extension point. It deliberately
// observes and passes through: the payload transformation it could
// perform is deferred until the hosting agent defines the capability.
func (d *Dispatcher) Compact(in io.Reader) {
	ev := ParseEvent(in)
	d.log.Debug("compaction observed",
		zap.String("tool", ev.ToolName),
		zap.Int("payload_bytes", len(ev.RawOutput)))
}
