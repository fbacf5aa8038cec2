// Package transport is the stdin/stdout JSON envelope codec at the edge of
// the gate (spec.md §6): it never makes a policy decision, only decodes one
// input envelope and encodes one output envelope. Grounded on the teacher's
// internal/cli/hook.go (hookInput/cursorHookOutput decode-then-dispatch
// shape), narrowed to the single Claude Code envelope this spec names
// rather than the teacher's multi-IDE auto-detection.
package transport

import (
	"encoding/json"
	"errors"
	"io"
)

// ErrMalformedInput is returned when the input envelope cannot be decoded
// as JSON at all — the one case spec.md §6 reserves exit code 2 for.
var ErrMalformedInput = errors.New("malformed input envelope")

// Request is the input envelope: {"tool_name":"Bash","tool_input":{"command":"..."}}.
// Any other fields are ignored, per spec.md §6.
type Request struct {
	ToolName  string `json:"tool_name"`
	ToolInput struct {
		Command string `json:"command"`
	} `json:"tool_input"`
}

// IsBash reports whether this request names the Bash tool.
func (r Request) IsBash() bool {
	return r.ToolName == "Bash"
}

// Response is the output envelope: permission plus a human-readable reason.
type Response struct {
	Permission string `json:"permission"`
	Reason     string `json:"reason"`
}

// EmptyResponse is written when tool_name is not "Bash": spec.md §6 calls
// for "an empty permission object" in that case.
func EmptyResponse() Response {
	return Response{}
}

// ReadRequest decodes one JSON object from r. A decode failure is wrapped
// in ErrMalformedInput so the caller can map it to exit code 2.
func ReadRequest(r io.Reader) (Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Request{}, errors.Join(ErrMalformedInput, err)
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, errors.Join(ErrMalformedInput, err)
	}
	return req, nil
}

// WriteResponse encodes resp as one JSON object to w, followed by a
// newline.
func WriteResponse(w io.Writer, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
