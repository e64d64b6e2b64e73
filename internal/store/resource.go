package store

// FetchState is the lifecycle state of a remote resource:
// idle -> fetching -> fetched | failed. Re-fetching from failed goes back
// through fetching; fetched and failed are terminal until then.
type FetchState string

const (
	StateIdle     FetchState = "idle"
	StateFetching FetchState = "fetching"
	StateFetched  FetchState = "fetched"
	StateFailed   FetchState = "failed"
)

// Resource holds one remote resource's lifecycle state, its last successful
// payload and the total count for pagination. On failure the payload is
// cleared and Message carries the user-facing error.
type Resource[T any] struct {
	State   FetchState
	Payload T
	Total   int
	Message string
}

func (r *Resource[T]) begin() {
	r.State = StateFetching
	r.Message = ""
}

func (r *Resource[T]) succeed(payload T, total int) {
	r.State = StateFetched
	r.Payload = payload
	r.Total = total
	r.Message = ""
}

func (r *Resource[T]) fail(message string) {
	var empty T
	r.State = StateFailed
	r.Payload = empty
	r.Total = 0
	r.Message = message
}
