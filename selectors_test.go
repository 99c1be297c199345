package endpoint

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dylanonelson/endpoint/store"
)

func TestSelectorsMemoized(t *testing.T) {
	e := newUsersEndpoint(t, okRequest(nil))

	a := e.Selectors.For(Params{"id": 1})
	b := e.Selectors.For(Params{"id": 1, "ignored": true})
	c := e.Selectors.For(Params{"id": 2})

	if a != b {
		t.Error("Expected params resolving to the same key to share a selector")
	}
	if a == c {
		t.Error("Expected different keys to get different selectors")
	}
	if e.Selectors.ForKey(1) != a {
		t.Error("Expected ForKey to share the memo with For")
	}
	if e.Selectors.Len() != 2 {
		t.Errorf("Expected 2 memoized selectors, got %d", e.Selectors.Len())
	}
	if a.Path() != 1 {
		t.Errorf("Expected path 1, got %v", a.Path())
	}
}

func TestSelectorsDistinguishKeyTypes(t *testing.T) {
	e := newUsersEndpoint(t, okRequest(nil))

	if e.Selectors.For(Params{"id": 1}) == e.Selectors.For(Params{"id": int64(1)}) {
		t.Error("Expected int and int64 keys to be distinct")
	}
	if e.Selectors.For(Params{"id": 1}) == e.Selectors.For(Params{"id": "1"}) {
		t.Error("Expected int and string keys to be distinct")
	}
}

func TestSelectorsConcurrent(t *testing.T) {
	e := newUsersEndpoint(t, okRequest(nil))

	const n = 64
	got := make([]*KeySelector, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = e.Selectors.For(Params{"id": 7})
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if got[i] != got[0] {
			t.Fatalf("Expected one selector for key 7, got distinct at %d", i)
		}
	}
}

func TestSelectorsMissingRecord(t *testing.T) {
	e := newUsersEndpoint(t, okRequest(nil))
	sel := e.Selectors.For(Params{"id": 1})

	for _, root := range []any{nil, State{}, "not a state"} {
		if sel.Record(root) != nil {
			t.Errorf("Expected nil record for root %v", root)
		}
		if sel.Data(root) != nil {
			t.Errorf("Expected nil data for root %v", root)
		}
		if sel.Error(root) != nil {
			t.Errorf("Expected nil error for root %v", root)
		}
		if sel.IsPending(root) {
			t.Errorf("Expected not pending for root %v", root)
		}
		if sel.PendingRequests(root) != 0 || sel.SuccessfulRequests(root) != 0 || sel.CompletedRequests(root) != 0 {
			t.Errorf("Expected zero counters for root %v", root)
		}
		if sel.HasBeenRequested(root) || sel.HasCompletedOnce(root) {
			t.Errorf("Expected no history for root %v", root)
		}
	}
}

func TestSelectorsProjections(t *testing.T) {
	e := newUsersEndpoint(t, okRequest(nil))
	sel := e.Selectors.For(Params{"id": 1})
	req := e.Request(Params{"id": 1})

	state := e.Reducer(nil, req)
	if !sel.IsPending(state) || !sel.HasBeenRequested(state) {
		t.Error("Expected pending and requested after a request")
	}
	if sel.HasCompletedOnce(state) {
		t.Error("Expected no completion yet")
	}

	state = e.Reducer(state, e.Ingest("ok", req.Meta))
	if sel.IsPending(state) {
		t.Error("Expected not pending after ingest")
	}
	if !sel.HasCompletedOnce(state) {
		t.Error("Expected completion after ingest")
	}
	if sel.Data(state) != "ok" {
		t.Errorf("Expected data ok, got %v", sel.Data(state))
	}
	if sel.Record(state) != state[1] {
		t.Error("Expected Record to return the stored pointer")
	}
}

func TestTreeSelector(t *testing.T) {
	users, err := New(Config{
		Name:         "users",
		URL:          "http://localhost:1111/api/users/:id",
		Request:      okRequest(nil),
		Resolver:     ParamResolver("id"),
		RootSelector: TreeSelector("users"),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	posts, err := New(Config{
		Name:         "posts",
		URL:          "http://localhost:1111/api/posts",
		Request:      okRequest(nil),
		RootSelector: TreeSelector("posts"),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	reducer := store.Combine(map[string]store.Reducer[any]{
		"users": store.Slice[State](users.Reducer),
		"posts": store.Slice[State](posts.Reducer),
	})
	s := store.New[store.Tree](reducer, nil)

	req := users.Request(Params{"id": 3})
	s.Dispatch(req)
	s.Dispatch(users.Ingest("carol", req.Meta))

	root := s.GetState()
	if users.Selectors.For(Params{"id": 3}).Data(root) != "carol" {
		t.Errorf("Expected carol, got %v", users.Selectors.For(Params{"id": 3}).Data(root))
	}
	if posts.Selectors.For(nil).HasBeenRequested(root) {
		t.Error("Expected posts to be untouched")
	}

	before := s.GetState()
	s.Dispatch(store.Basic{Type: "UNRELATED"})
	if users.Selectors.For(Params{"id": 3}).Record(s.GetState()) != users.Selectors.For(Params{"id": 3}).Record(before) {
		t.Error("Expected unrelated actions to keep record identity")
	}

	if TreeSelector("users")(nil) != nil {
		t.Error("Expected nil state for a nil tree")
	}
	if TreeSelector("missing")(root) != nil {
		t.Error("Expected nil state for an unknown slice")
	}
}

func TestSelectorCacheSizeMetric(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)
	e := newUsersEndpoint(t, okRequest(nil), WithMetricsCollector(collector))

	e.Selectors.For(Params{"id": 1})
	e.Selectors.For(Params{"id": 1})
	e.Selectors.For(Params{"id": 2})

	got := testutil.ToFloat64(collector.selectorCacheSize.WithLabelValues("users"))
	if got != 2 {
		t.Errorf("Expected selector cache size 2, got %v", got)
	}
}

func TestSelectFunctionsNilSafe(t *testing.T) {
	if SelectData(nil) != nil || SelectError(nil) != nil {
		t.Error("Expected nil projections of a nil record")
	}
	if SelectIsPending(nil) || SelectHasBeenRequested(nil) || SelectHasCompletedOnce(nil) {
		t.Error("Expected false flags for a nil record")
	}
	if SelectPendingRequests(nil) != 0 || SelectSuccessfulRequests(nil) != 0 || SelectCompletedRequests(nil) != 0 {
		t.Error("Expected zero counters for a nil record")
	}

	r := &KeyRecord{PendingRequests: 1, SuccessfulRequests: 2, CompletedRequests: 3}
	if !SelectIsPending(r) || SelectSuccessfulRequests(r) != 2 || SelectCompletedRequests(r) != 3 {
		t.Errorf("Expected projections of %+v", r)
	}
}
