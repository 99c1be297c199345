// Package endpoint generates everything needed to perform one parametrized
// network request and track its lifecycle in a store:
//
//   - a request/ingest action creator pair with stable type tags
//   - a middleware that performs requests and dispatches their outcome
//   - a reducer keeping a KeyRecord (data, error, counters) per resolved key
//   - memoized per-key selectors
//
// Typical usage:
//
//	users := endpoint.MustNew(endpoint.Config{
//	    Name:     "users",
//	    URL:      "https://api.example.com/users/:id",
//	    Request:  transport.New().Get,
//	    Resolver: endpoint.ParamResolver("id"),
//	})
//	s := store.New[endpoint.State](users.Reducer, nil, users.Middleware)
//	pending := s.Dispatch(users.Request(endpoint.Params{"id": 42})).(*endpoint.Pending)
//	_, _ = pending.Wait(ctx)
//	record := users.Selector(s.GetState(), endpoint.Params{"id": 42})
//
// Keys are compared by value. Comparable keys are used as-is; slices and maps
// are normalized to their JSON encoding. Requests are never retried or
// cancelled: every dispatched request produces exactly one ingest action.
package endpoint
