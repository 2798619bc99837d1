package mcpserver

import (
	"encoding/json"
	"time"

	"github.com/rivershell/mcpshell/internal/shellsup"
)

// toolHandler is the static dispatch table's value type, per spec.md §9's
// "replace dynamic dispatch on tool names with a static table of {name ->
// (argument-shape, handler)}." args is the already-extracted "arguments"
// field of a tools/call request.
type toolHandler func(sup *shellsup.Supervisor, args json.RawMessage) (contentEnvelope, error)

// tools is the static table binding spec.md §6's five tool names to
// supervisor operations.
var tools = map[string]toolHandler{
	"start_shell": handleStartShell,
	"check_shell": handleCheckShell,
	"send_input":  handleSendInput,
	"stop_shell":  handleStopShell,
	"list_shells": handleListShells,
}

type startShellArgs struct {
	Command               string            `json:"command"`
	Args                  []string          `json:"args"`
	WorkingDirectory      string            `json:"workingDirectory"`
	Label                 string            `json:"label"`
	VerificationPattern   string            `json:"verification_pattern"`
	VerificationTimeoutMs int               `json:"verification_timeout_ms"`
	NotablePattern        string            `json:"notable_pattern"`
	Env                   map[string]string `json:"env"`
}

func handleStartShell(sup *shellsup.Supervisor, raw json.RawMessage) (contentEnvelope, error) {
	var a startShellArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return errorEnvelope(shellsup.KindBadArguments, "malformed arguments: "+err.Error()), nil
	}
	if a.Command == "" {
		return errorEnvelope(shellsup.KindBadArguments, "command is required"), nil
	}
	if a.Label == "" {
		return errorEnvelope(shellsup.KindBadArguments, "label is required"), nil
	}

	verifyPattern, err := shellsup.CompilePattern(a.VerificationPattern)
	if err != nil {
		return errorEnvelope(shellsup.KindBadArguments, err.Error()), nil
	}
	notablePattern, err := shellsup.CompilePattern(a.NotablePattern)
	if err != nil {
		return errorEnvelope(shellsup.KindBadArguments, err.Error()), nil
	}

	timeout := time.Duration(a.VerificationTimeoutMs) * time.Millisecond

	spec := shellsup.StartSpec{
		Label:               a.Label,
		Command:             a.Command,
		Args:                a.Args,
		Cwd:                 a.WorkingDirectory,
		Env:                 envSlice(a.Env),
		VerificationPattern: verifyPattern,
		VerificationTimeout: timeout,
		NotablePattern:      notablePattern,
	}

	snap, err := sup.StartShell(spec)
	if err != nil {
		return envelopeFromError(err), nil
	}
	return snapshotEnvelope(snap), nil
}

type labelArgs struct {
	Label string `json:"label"`
}

type checkShellArgs struct {
	Label    string `json:"label"`
	LogLines *int   `json:"log_lines"`
}

func handleCheckShell(sup *shellsup.Supervisor, raw json.RawMessage) (contentEnvelope, error) {
	var a checkShellArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return errorEnvelope(shellsup.KindBadArguments, "malformed arguments: "+err.Error()), nil
	}
	if a.Label == "" {
		return errorEnvelope(shellsup.KindBadArguments, "label is required"), nil
	}
	logLines := 50
	if a.LogLines != nil {
		logLines = *a.LogLines
	}

	snap, err := sup.CheckShell(a.Label, logLines)
	if err != nil {
		return envelopeFromError(err), nil
	}
	return snapshotEnvelope(snap), nil
}

type sendInputArgs struct {
	Label         string `json:"label"`
	Input         string `json:"input"`
	AppendNewline *bool  `json:"append_newline"`
}

func handleSendInput(sup *shellsup.Supervisor, raw json.RawMessage) (contentEnvelope, error) {
	var a sendInputArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return errorEnvelope(shellsup.KindBadArguments, "malformed arguments: "+err.Error()), nil
	}
	if a.Label == "" {
		return errorEnvelope(shellsup.KindBadArguments, "label is required"), nil
	}
	appendNewline := true
	if a.AppendNewline != nil {
		appendNewline = *a.AppendNewline
	}

	snap, err := sup.SendInput(a.Label, a.Input, appendNewline)
	if err != nil {
		return envelopeFromError(err), nil
	}
	return snapshotEnvelope(snap), nil
}

type stopShellArgs struct {
	Label string `json:"label"`
	Force *bool  `json:"force"`
}

func handleStopShell(sup *shellsup.Supervisor, raw json.RawMessage) (contentEnvelope, error) {
	var a stopShellArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return errorEnvelope(shellsup.KindBadArguments, "malformed arguments: "+err.Error()), nil
	}
	if a.Label == "" {
		return errorEnvelope(shellsup.KindBadArguments, "label is required"), nil
	}
	force := false
	if a.Force != nil {
		force = *a.Force
	}

	snap, err := sup.StopShell(a.Label, force)
	if err != nil {
		return envelopeFromError(err), nil
	}
	return snapshotEnvelope(snap), nil
}

func handleListShells(sup *shellsup.Supervisor, _ json.RawMessage) (contentEnvelope, error) {
	summaries := sup.ListShells()
	type minimalShell struct {
		Label  string `json:"label"`
		Status string `json:"status"`
		Pid    int    `json:"pid,omitempty"`
		Uptime string `json:"uptime"`
	}
	out := make([]minimalShell, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, minimalShell{
			Label:  s.Label,
			Status: s.Status,
			Pid:    s.Pid,
			Uptime: humanizeDuration(s.Uptime),
		})
	}
	return jsonEnvelope(out, false), nil
}

func envSlice(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	return out
}

func snapshotEnvelope(snap shellsup.Snapshot) contentEnvelope {
	return jsonEnvelope(snap, false)
}

func errorEnvelope(kind shellsup.Kind, message string) contentEnvelope {
	return jsonEnvelope(map[string]string{"error": string(kind), "message": message}, true)
}

func envelopeFromError(err error) contentEnvelope {
	if se, ok := shellsup.AsError(err); ok {
		return errorEnvelope(se.Kind, se.Message)
	}
	return errorEnvelope(shellsup.KindInternal, err.Error())
}

func jsonEnvelope(v any, isError bool) contentEnvelope {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte(`{"error":"Internal","message":"failed to encode result"}`)
		isError = true
	}
	return contentEnvelope{
		Content: []contentItem{{Type: "text", Text: string(data)}},
		IsError: isError,
	}
}
