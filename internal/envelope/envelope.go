// Package envelope defines the uniform result type returned by every
// operation in this module, regardless of whether the git binary or the
// GitHub API was the backend that produced it.
package envelope

import "fmt"

// Kind classifies why an operation failed. It is empty on success.
type Kind string

const (
	// KindTool marks a non-zero exit from the external git binary.
	KindTool Kind = "tool"
	// KindTransport marks a network-level failure reaching the remote service.
	KindTransport Kind = "transport"
	// KindRemote marks a non-2xx rejection reported by the remote service.
	KindRemote Kind = "remote"
)

// Envelope wraps the outcome of a single operation. Exactly one of Output and
// Error is populated, and Succeeded is always consistent with which one it is.
// Envelopes are constructed fresh per call and never mutated afterwards.
type Envelope struct {
	Succeeded bool   `json:"succeeded"`
	Output    string `json:"output,omitempty"`
	Error     string `json:"error,omitempty"`
	Kind      Kind   `json:"kind,omitempty"`
}

// Success returns a succeeded envelope carrying the operation's output text.
// An empty output is normalized to "ok" so the populated-field invariant holds
// for git commands that print nothing on success.
func Success(output string) Envelope {
	if output == "" {
		output = "ok"
	}
	return Envelope{Succeeded: true, Output: output}
}

// Failure returns a failed envelope carrying the raw error text from the
// external tool or service, unmodified.
func Failure(kind Kind, errText string) Envelope {
	if errText == "" {
		errText = "unknown error"
	}
	return Envelope{Succeeded: false, Error: errText, Kind: kind}
}

// Failuref is Failure with fmt-style formatting.
func Failuref(kind Kind, format string, args ...any) Envelope {
	return Failure(kind, fmt.Sprintf(format, args...))
}

// String renders the envelope as a single human-readable line.
func (e Envelope) String() string {
	if e.Succeeded {
		return e.Output
	}
	if e.Kind == "" {
		return e.Error
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Error)
}
