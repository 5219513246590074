// Package hook implements the entry/exit protocol shared by every
// hookscope invocation: read one event from stdin, write at most one
// result to stdout, exit zero. All failure handling is fail-open — the
// worst outcome of any internal fault is that no summary is produced
// and the underlying tool call proceeds untouched.
package hook

import (
	"encoding/json"
	"io"
	"time"
)

// maxEventBytes caps the stdin read. Post-tool payloads carry the full
// raw output, so the bound is generous; anything past it is dropped
// rather than buffered without limit.
const maxEventBytes = 16 << 20

// Event is one tool invocation as delivered by the hosting agent. It
// lives for a single process and is discarded at exit.
type Event struct {
	ToolName  string
	Command   string
	RawOutput string
	Timestamp time.Time
}

// wireEvent mirrors the incoming JSON payload.
type wireEvent struct {
	ToolName  string `json:"tool_name"`
	ToolInput struct {
		Command string `json:"command"`
	} `json:"tool_input"`
	ToolOutput struct {
		Output string `json:"output"`
	} `json:"tool_output"`
}

// ParseEvent reads one event payload. Malformed JSON, a short read, or
// missing fields all degrade to an empty event: the caller treats that
// as "nothing to summarize", never as a reason to fail the tool call.
func ParseEvent(r io.Reader) Event {
	ev := Event{Timestamp: time.Now()}

	data, err := io.ReadAll(io.LimitReader(r, maxEventBytes))
	if err != nil || len(data) == 0 {
		return ev
	}

	var wire wireEvent
	if err := json.Unmarshal(data, &wire); err != nil {
		return ev
	}

	ev.ToolName = wire.ToolName
	ev.Command = wire.ToolInput.Command
	ev.RawOutput = wire.ToolOutput.Output
	return ev
}
