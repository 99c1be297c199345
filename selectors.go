package endpoint

import (
	"github.com/dylanonelson/endpoint/internal/memo"
	"github.com/dylanonelson/endpoint/store"
)

// Selectors builds per-key selectors for an endpoint.
type Selectors struct {
	resolve  Resolver
	root     RootSelector
	table    *memo.Group[Key, *KeySelector]
	onCreate func(size int)
}

func newSelectors(resolve Resolver, root RootSelector, onCreate func(size int)) *Selectors {
	return &Selectors{
		resolve:  resolve,
		root:     root,
		table:    memo.New[Key, *KeySelector](),
		onCreate: onCreate,
	}
}

// For returns the selector for the key params resolve to. Parameters that
// resolve to equal keys get the identical *KeySelector, so callers may
// compare selectors by pointer. Selectors are never evicted.
func (s *Selectors) For(params Params) *KeySelector {
	if params == nil {
		params = Params{}
	}
	return s.ForKey(s.resolve(params))
}

// ForKey is like For but takes an already resolved key.
func (s *Selectors) ForKey(path Key) *KeySelector {
	path = normalizeKey(path)
	sel, created := s.table.Do(path, func() *KeySelector {
		return &KeySelector{path: path, root: s.root}
	})
	if created && s.onCreate != nil {
		s.onCreate(s.table.Len())
	}
	return sel
}

// Len reports how many distinct keys have selectors.
func (s *Selectors) Len() int {
	return s.table.Len()
}

// KeySelector reads one key of an endpoint's state out of a root state.
type KeySelector struct {
	path Key
	root RootSelector
}

// Path is the key this selector reads.
func (k *KeySelector) Path() Key {
	return k.path
}

// Record returns the key's record, or nil if the endpoint slice or the key
// is absent.
func (k *KeySelector) Record(root any) *KeyRecord {
	slice := k.root(root)
	if slice == nil {
		return nil
	}
	return slice[k.path]
}

// Data returns the last successful payload, or nil.
func (k *KeySelector) Data(root any) any {
	return SelectData(k.Record(root))
}

// Error returns the last error, or nil.
func (k *KeySelector) Error(root any) *ErrorInfo {
	return SelectError(k.Record(root))
}

// IsPending reports whether a request for the key is in flight.
func (k *KeySelector) IsPending(root any) bool {
	return SelectIsPending(k.Record(root))
}

// PendingRequests returns the number of requests in flight.
func (k *KeySelector) PendingRequests(root any) int {
	return SelectPendingRequests(k.Record(root))
}

// SuccessfulRequests returns the number of successful requests.
func (k *KeySelector) SuccessfulRequests(root any) int {
	return SelectSuccessfulRequests(k.Record(root))
}

// CompletedRequests returns the number of completed requests.
func (k *KeySelector) CompletedRequests(root any) int {
	return SelectCompletedRequests(k.Record(root))
}

// HasBeenRequested reports whether a request was ever started.
func (k *KeySelector) HasBeenRequested(root any) bool {
	return SelectHasBeenRequested(k.Record(root))
}

// HasCompletedOnce reports whether any request has completed.
func (k *KeySelector) HasCompletedOnce(root any) bool {
	return SelectHasCompletedOnce(k.Record(root))
}

// SelectData returns r's data; nil-safe.
func SelectData(r *KeyRecord) any {
	if r == nil {
		return nil
	}
	return r.Data
}

// SelectError returns r's error; nil-safe.
func SelectError(r *KeyRecord) *ErrorInfo {
	if r == nil {
		return nil
	}
	return r.Error
}

// SelectIsPending reports r.PendingRequests > 0; nil-safe.
func SelectIsPending(r *KeyRecord) bool {
	return SelectPendingRequests(r) > 0
}

// SelectPendingRequests returns r.PendingRequests; nil-safe.
func SelectPendingRequests(r *KeyRecord) int {
	if r == nil {
		return 0
	}
	return r.PendingRequests
}

// SelectSuccessfulRequests returns r.SuccessfulRequests; nil-safe.
func SelectSuccessfulRequests(r *KeyRecord) int {
	if r == nil {
		return 0
	}
	return r.SuccessfulRequests
}

// SelectCompletedRequests returns r.CompletedRequests; nil-safe.
func SelectCompletedRequests(r *KeyRecord) int {
	return r.TotalRequests()
}

// SelectHasBeenRequested reports whether any request is pending or done.
func SelectHasBeenRequested(r *KeyRecord) bool {
	return SelectPendingRequests(r) > 0 || SelectCompletedRequests(r) > 0
}

// SelectHasCompletedOnce reports whether any request has completed.
func SelectHasCompletedOnce(r *KeyRecord) bool {
	return SelectCompletedRequests(r) > 0
}

// identityRoot is the default RootSelector: the root is the endpoint state.
func identityRoot(root any) State {
	switch s := root.(type) {
	case State:
		return s
	case map[Key]*KeyRecord:
		return State(s)
	}
	return nil
}

// TreeSelector returns a RootSelector for an endpoint mounted under name in
// a store.Tree built with store.Combine.
func TreeSelector(name string) RootSelector {
	return func(root any) State {
		switch tree := root.(type) {
		case store.Tree:
			return identityRoot(tree[name])
		case map[string]any:
			return identityRoot(tree[name])
		}
		return nil
	}
}
