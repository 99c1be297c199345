package endpoint

import (
	"context"
	"time"

	"github.com/dylanonelson/endpoint/store"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Pending is returned by the middleware for every request action it
// handles. It resolves with the ingest action once that action has been
// dispatched.
type Pending struct {
	request RequestAction
	ingest  IngestAction
	done    chan struct{}
}

func newPending(request RequestAction) *Pending {
	return &Pending{
		request: request,
		done:    make(chan struct{}),
	}
}

// Request returns the action that started the request.
func (p *Pending) Request() RequestAction {
	return p.request
}

// Done is closed after the ingest action has been dispatched.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the ingest action has been dispatched or ctx is done.
// Giving up on the wait does not cancel the request.
func (p *Pending) Wait(ctx context.Context) (IngestAction, error) {
	select {
	case <-p.done:
		return p.ingest, nil
	case <-ctx.Done():
		return IngestAction{}, ctx.Err()
	}
}

// Action returns the ingest action if it has been dispatched.
func (p *Pending) Action() (IngestAction, bool) {
	select {
	case <-p.done:
		return p.ingest, true
	default:
		return IngestAction{}, false
	}
}

func (p *Pending) resolve(ingest IngestAction) {
	p.ingest = ingest
	close(p.done)
}

// Middleware performs the requests of this endpoint.
//
// Every action other than this endpoint's request action passes straight
// through. A request action is forwarded to next first, then the request runs
// on its own goroutine and the dispatch returns a *Pending. When the request
// settles exactly one ingest action is dispatched through api: a Success for
// a value, a Failure for an error, a returned error value, or a panic.
func (e *Endpoint) Middleware(api store.API) func(next store.Dispatch) store.Dispatch {
	return func(next store.Dispatch) store.Dispatch {
		return func(action store.Action) any {
			req, ok := e.ActionCreators.Request.Match(action)
			if !ok {
				return next(action)
			}

			next(action)

			pending := newPending(req)
			go e.perform(api, req, pending)
			return pending
		}
	}
}

func (e *Endpoint) perform(api store.API, req RequestAction, pending *Pending) {
	ingest := e.settle(req)
	defer pending.resolve(ingest)
	api.Dispatch(ingest)
}

// settle runs the request and builds its ingest action. A panic anywhere on
// the way, including in a user-supplied request ID generator or logger,
// settles the request as a failure.
func (e *Endpoint) settle(req RequestAction) (ingest IngestAction) {
	defer func() {
		if r := recover(); r != nil {
			ingest = e.ActionCreators.Ingest.Create(toError(r), req.Meta)
		}
	}()

	requestID := e.requestIDGen()
	start := time.Now()

	ctx, span := e.startSpan(e.baseCtx, req, requestID)

	e.metrics.RecordRequestStart(e.name)
	defer e.metrics.RecordRequestEnd(e.name)
	e.logger.Debug("Starting request", "endpoint", e.name, "requestID", requestID, "path", req.Meta.Path, "url", req.Meta.URL)

	data, err := e.call(ctx, req)
	if err != nil {
		ingest = e.ActionCreators.Ingest.Create(err, req.Meta)
	} else {
		ingest = e.ActionCreators.Ingest.Create(data, req.Meta)
	}

	duration := time.Since(start)
	outcome := outcomeSuccess
	if ingest.Error {
		outcome = outcomeError
	}

	e.metrics.RecordRequest(e.name, outcome, duration)
	endSpan(span, ingest)

	if ingest.Error {
		e.logger.Warn("Request failed", "endpoint", e.name, "requestID", requestID, "path", req.Meta.Path, "error", ingest.Err(), "duration", duration)
	} else {
		e.logger.Debug("Request succeeded", "endpoint", e.name, "requestID", requestID, "path", req.Meta.Path, "duration", duration)
	}

	return ingest
}

// call runs the request function, turning a panic into an error.
func (e *Endpoint) call(ctx context.Context, req RequestAction) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, toError(r)
		}
	}()
	return e.request(ctx, req.Meta.URL, req.Meta.Params)
}
