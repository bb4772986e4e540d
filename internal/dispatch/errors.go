package dispatch

// ErrorKind tags where in the pipeline a query failed. The caller-facing
// answer collapses every kind into one generic message; the kind survives in
// logs and metrics.
type ErrorKind string

const (
	// KindClassificationUnavailable means the completion service was
	// unreachable or returned a non-success response.
	KindClassificationUnavailable ErrorKind = "classification_unavailable"

	// KindGateway means the cluster API was reachable but the call failed
	// (auth, network, malformed response).
	KindGateway ErrorKind = "gateway_error"

	// KindInternal covers panics and anything else unexpected.
	KindInternal ErrorKind = "internal"
)

// QueryError is a pipeline failure with its origin attached.
type QueryError struct {
	Kind ErrorKind
	Err  error
}

func (e *QueryError) Error() string {
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
