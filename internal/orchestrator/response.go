package orchestrator

import "fmt"

// ResponseKind classifies a façade response.
type ResponseKind string

const (
	// KindOK is a successful operation.
	KindOK ResponseKind = "ok"
	// KindInvalid is a rejected input, reported before any storage access.
	KindInvalid ResponseKind = "invalid"
	// KindConflict is a create against an existing topic.
	KindConflict ResponseKind = "conflict"
	// KindNotFound is a reference to a topic that does not exist. It is a
	// normal result variant, not a fault: callers react to it in
	// conversation.
	KindNotFound ResponseKind = "not_found"
	// KindPrecondition is an operation that needs an active topic when
	// none is resolvable.
	KindPrecondition ResponseKind = "precondition"
	// KindFailed is an unmodeled storage fault rendered generically.
	KindFailed ResponseKind = "failed"
)

// Response is the result of a façade operation. Every operation returns
// one; nothing propagates past the façade boundary.
type Response struct {
	// Kind classifies the outcome.
	Kind ResponseKind
	// Text is the complete human-readable rendering.
	Text string
}

// OK reports whether the operation succeeded.
func (r Response) OK() bool {
	return r.Kind == KindOK
}

func ok(format string, args ...any) Response {
	return Response{Kind: KindOK, Text: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) Response {
	return Response{Kind: KindInvalid, Text: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) Response {
	return Response{Kind: KindConflict, Text: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) Response {
	return Response{Kind: KindNotFound, Text: fmt.Sprintf(format, args...)}
}

func precondition(format string, args ...any) Response {
	return Response{Kind: KindPrecondition, Text: fmt.Sprintf(format, args...)}
}

func failed(err error) Response {
	return Response{Kind: KindFailed, Text: fmt.Sprintf("operation failed: %v", err)}
}
