package mcpserver

import (
	"encoding/json"

	"github.com/rivershell/mcpshell/internal/shellsup"
)

// Dispatcher binds the transport to a Supervisor. It is constructed with an
// explicit Supervisor rather than reaching for a package-level one, per
// spec.md §9's "avoid process-wide singletons" note.
type Dispatcher struct {
	Supervisor *shellsup.Supervisor
}

// NewDispatcher builds a Dispatcher over sup.
func NewDispatcher(sup *shellsup.Supervisor) *Dispatcher {
	return &Dispatcher{Supervisor: sup}
}

// Handle processes one JSON-RPC request and returns the response to write.
// It always returns a non-nil response; a request without an id is answered
// like any other.
func (d *Dispatcher) Handle(req Request) *Response {
	if req.Method != "tools/call" {
		return errorResponse(req.ID, errCodeMethodNotFound, "unknown method: "+req.Method)
	}

	var params toolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, errCodeInvalidParams, "malformed params: "+err.Error())
	}

	handler, ok := tools[params.Name]
	if !ok {
		env := errorEnvelope(shellsup.KindBadArguments, "unknown tool: "+params.Name)
		return &Response{JSONRPC: "2.0", ID: req.ID, Result: env}
	}

	env, err := handler(d.Supervisor, params.Arguments)
	if err != nil {
		return errorResponse(req.ID, errCodeInternal, err.Error())
	}

	return &Response{JSONRPC: "2.0", ID: req.ID, Result: env}
}

func errorResponse(id json.RawMessage, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	}
}
