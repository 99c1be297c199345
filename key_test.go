package endpoint

import (
	"testing"
)

func TestDefaultResolver(t *testing.T) {
	if DefaultResolver(Params{"id": 1}) != DefaultKey {
		t.Errorf("Expected %s", DefaultKey)
	}
	if DefaultResolver(nil) != DefaultKey {
		t.Errorf("Expected %s for nil params", DefaultKey)
	}
}

func TestParamResolver(t *testing.T) {
	resolve := ParamResolver("id")

	if resolve(Params{"id": 1776}) != 1776 {
		t.Errorf("Expected 1776, got %v", resolve(Params{"id": 1776}))
	}
	if resolve(Params{}) != nil {
		t.Errorf("Expected nil for a missing param, got %v", resolve(Params{}))
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		expected Key
	}{
		{"nil", nil, nil},
		{"int", 1, 1},
		{"int64", int64(1), int64(1)},
		{"string", "a", "a"},
		{"struct", struct{ A int }{1}, struct{ A int }{1}},
		{"slice", []int{1, 2}, compositeKey("[1,2]")},
		{"map", map[string]any{"b": 2, "a": 1}, compositeKey(`{"a":1,"b":2}`)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := normalizeKey(test.key); got != test.expected {
				t.Errorf("Expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestNormalizeKeyUnencodable(t *testing.T) {
	key := []any{func() {}}
	got, ok := normalizeKey(key).(compositeKey)
	if !ok || got == "" {
		t.Errorf("Expected a composite fallback, got %v", normalizeKey(key))
	}
}

func TestCompositeKeyDistinctFromString(t *testing.T) {
	e, err := New(Config{
		Name:     "lookup",
		URL:      "http://localhost:1111/lookup",
		Request:  okRequest(nil),
		Resolver: ParamResolver("k"),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	composite := e.Request(Params{"k": []any{"a", 1}})
	text := e.Request(Params{"k": `["a",1]`})
	if composite.Meta.Path == text.Meta.Path {
		t.Errorf("Expected distinct paths, got %v and %v", composite.Meta.Path, text.Meta.Path)
	}

	state := e.Reducer(nil, composite)
	state = e.Reducer(state, text)
	if len(state) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(state))
	}
	for path, record := range state {
		if record.PendingRequests != 1 {
			t.Errorf("Expected PendingRequests=1 for %v, got %d", path, record.PendingRequests)
		}
	}
	if e.Selectors.For(Params{"k": []any{"a", 1}}) == e.Selectors.For(Params{"k": `["a",1]`}) {
		t.Error("Expected distinct selectors")
	}
}
