package endpoint

import (
	"context"
)

// Params is the parameter mapping a request is made with. A nil Params is
// treated as empty.
type Params map[string]any

// Key addresses one slot in an endpoint's State. See Resolver for the
// equality rules keys must follow.
type Key = any

// Resolver maps request parameters to a Key. It must be deterministic: equal
// parameters must produce equal keys for the lifetime of the endpoint, since
// the key is both the reducer's storage address and the selector memo key.
type Resolver func(params Params) Key

// URLFunc builds a request URL from parameters.
type URLFunc func(params Params) string

// RequestFunc performs the network request for an endpoint. A non-nil error
// (or a returned value that is itself an error) marks the request failed.
type RequestFunc func(ctx context.Context, url string, params Params) (any, error)

// RootSelector locates an endpoint's State inside a larger state tree.
type RootSelector func(root any) State

// State maps keys to their records. Reducers never modify a State or a
// KeyRecord in place.
type State map[Key]*KeyRecord

// KeyRecord tracks the request lifecycle for one key.
type KeyRecord struct {
	// Data is the payload of the last successful request.
	Data any
	// Error describes the last failed request; cleared by a success.
	Error *ErrorInfo

	PendingRequests    int
	SuccessfulRequests int
	CompletedRequests  int
}

// NewKeyRecord returns a record with zero counters and no data or error.
func NewKeyRecord() *KeyRecord {
	return &KeyRecord{}
}

// TotalRequests is the number of completed requests, successful or not.
func (r *KeyRecord) TotalRequests() int {
	if r == nil {
		return 0
	}
	return r.CompletedRequests
}

func (r *KeyRecord) clone() *KeyRecord {
	if r == nil {
		return NewKeyRecord()
	}
	c := *r
	return &c
}

// Meta is the correlation data shared by a request and its ingest.
type Meta struct {
	Params Params
	Path   Key
	URL    string
}

// RequestPayload is the payload of a RequestAction.
type RequestPayload struct {
	URL string
}
