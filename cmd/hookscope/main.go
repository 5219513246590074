package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hookscope/internal/config"
	"hookscope/internal/hook"
	"hookscope/internal/logging"
	"hookscope/internal/session"
)

var (
	// Global flags
	verbose     bool
	projectRoot string

	// Resolved per invocation
	cfg        *config.Config
	paths      config.Paths
	logger     *zap.Logger
	dispatcher *hook.Dispatcher
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hookscope",
	Short: "hookscope - lossless capture and bounded summaries for agent tool output",
	Long: `hookscope sits between a coding agent and the shell tools it invokes.

It warns before commands known to produce excessive output, captures every
command's raw output losslessly to disk, and replaces that output with a
small severity-focused summary before it reaches the agent's context window.

The hook subcommands are wired into the agent's settings and read one JSON
event from stdin per invocation. Every handler is advisory: hookscope always
exits zero and never blocks the underlying tool call.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		paths = config.ResolvePaths(projectRoot)
		cfg = config.LoadDir(paths.Base)
		logger = logging.New(paths.DiagnosticLog(), verbose)
		dispatcher = hook.NewDispatcher(cfg, paths, logger)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var preToolCmd = &cobra.Command{
	Use:    "pre-tool",
	Short:  "Pre-execution hook: advisory high-waste warning",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		dispatcher.PreTool(os.Stdin, os.Stderr)
	},
}

var postToolCmd = &cobra.Command{
	Use:    "post-tool",
	Short:  "Post-execution hook: persist raw output, emit bounded summary",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		dispatcher.PostTool(os.Stdin, os.Stdout)
	},
}

var sessionStartCmd = &cobra.Command{
	Use:    "session-start",
	Short:  "Session hook: begin a new session record",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		dispatcher.SessionStart()
	},
}

var sessionEndCmd = &cobra.Command{
	Use:    "session-end",
	Short:  "Session hook: report stats and sweep expired logs",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		dispatcher.SessionEnd(os.Stdout)
	},
}

var compactCmd = &cobra.Command{
	Use:    "compact",
	Short:  "Compaction hook: observe-only extension point",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		dispatcher.Compact(os.Stdin)
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete raw logs older than the retention window",
	Run: func(cmd *cobra.Command, args []string) {
		dispatcher.SweepLogs()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the current session's statistics",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, ok, err := session.Load(paths)
		if err != nil || !ok {
			fmt.Println("no active session")
			return
		}
		report, err := ctx.Report()
		if err != nil {
			fmt.Println("no active session")
			return
		}
		fmt.Print(report)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", "",
		"project root (defaults to $"+config.ProjectRootEnv+", then the working directory)")

	rootCmd.AddCommand(preToolCmd)
	rootCmd.AddCommand(postToolCmd)
	rootCmd.AddCommand(sessionStartCmd)
	rootCmd.AddCommand(sessionEndCmd)
	rootCmd.AddCommand(compactCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	// Hook handlers are advisory-only: argument errors aside, the
	// process exits zero so the hosting tool call is never blocked.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(0)
	}
}
