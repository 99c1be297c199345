// Package store is a small single-writer state container. Actions pass
// through a middleware chain and are folded into state by a reducer one at a
// time, so reducers never need their own locking.
package store

import (
	"sync"
)

// ActionType tags an action so reducers and middleware can recognize it.
type ActionType string

// String returns the tag.
func (t ActionType) String() string {
	return string(t)
}

// Action is anything that can be dispatched.
type Action interface {
	ActionType() ActionType
}

// Basic is a plain action with an arbitrary payload.
type Basic struct {
	Type    ActionType
	Payload any
}

// ActionType implements Action.
func (a Basic) ActionType() ActionType {
	return a.Type
}

// Reducer folds an action into the previous state.
type Reducer[S any] func(S, Action) S

// Dispatch sends an action down the chain. The return value is whatever the
// outermost middleware decides to hand back to the caller.
type Dispatch func(Action) any

// API is the view of the store given to middleware.
type API interface {
	Dispatch(Action) any
}

// Middleware wraps the next dispatch function.
type Middleware func(api API) func(next Dispatch) Dispatch

// Store holds state of type S.
type Store[S any] struct {
	mu       sync.Mutex
	state    S
	reducer  Reducer[S]
	dispatch Dispatch

	listenersMu sync.RWMutex
	listeners   map[uint64]func()
	nextID      uint64
}

// New creates a store. Middleware are applied so that the first one listed
// sees every action first.
func New[S any](reducer Reducer[S], initial S, middleware ...Middleware) *Store[S] {
	s := &Store[S]{
		state:     initial,
		reducer:   reducer,
		listeners: make(map[uint64]func()),
	}

	s.dispatch = s.reduce
	for i := len(middleware) - 1; i >= 0; i-- {
		next := s.dispatch
		s.dispatch = middleware[i](s)(next)
	}

	return s
}

// Dispatch runs action through the middleware chain and the reducer. It is
// safe to call from multiple goroutines; reductions are serialized.
func (s *Store[S]) Dispatch(action Action) any {
	if action == nil {
		return nil
	}
	return s.dispatch(action)
}

// GetState returns the current state snapshot.
func (s *Store[S]) GetState() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called after every reduction and returns a
// function that removes it.
func (s *Store[S]) Subscribe(fn func()) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

func (s *Store[S]) reduce(action Action) any {
	s.apply(action)
	s.notify()
	return action
}

// apply runs the reducer under the lock. A panicking reducer leaves the
// state unchanged and the store usable.
func (s *Store[S]) apply(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer(s.state, action)
}

func (s *Store[S]) notify() {
	s.listenersMu.RLock()
	listeners := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
