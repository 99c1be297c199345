package endpoint

import (
	"github.com/samber/lo"

	"github.com/dylanonelson/endpoint/store"
)

// Reducer folds this endpoint's request and ingest actions into prev.
//
// Any other action returns prev itself. Otherwise the result is a new map in
// which only the addressed record is replaced; every other record keeps its
// pointer, so selectors over untouched keys see identical values.
//
// An ingest for a key without a record starts from a fresh record, and the
// pending count never drops below zero.
func (e *Endpoint) Reducer(prev State, action store.Action) State {
	if a, ok := e.ActionCreators.Request.Match(action); ok {
		return reduceRequest(prev, a)
	}
	if a, ok := e.ActionCreators.Ingest.Match(action); ok {
		return reduceIngest(prev, a)
	}
	return prev
}

func reduceRequest(prev State, a RequestAction) State {
	record := prev[a.Meta.Path].clone()
	record.PendingRequests++
	return withRecord(prev, a.Meta.Path, record)
}

func reduceIngest(prev State, a IngestAction) State {
	record := prev[a.Meta.Path].clone()
	if record.PendingRequests > 0 {
		record.PendingRequests--
	}
	record.CompletedRequests++

	if f, ok := a.Payload.(Failure); ok {
		record.Error = NewErrorInfo(f.Err)
	} else {
		record.Data = a.Data()
		record.Error = nil
		record.SuccessfulRequests++
	}

	return withRecord(prev, a.Meta.Path, record)
}

func withRecord(prev State, path Key, record *KeyRecord) State {
	next := State(lo.Assign(prev))
	next[path] = record
	return next
}
