package endpoint

import (
	"github.com/dylanonelson/endpoint/store"
)

const (
	requestTypeSuffix = "/MAKE_REQUEST"
	ingestTypeSuffix  = "/INGEST_RESPONSE"
)

// RequestAction starts a request.
type RequestAction struct {
	Type    store.ActionType
	Meta    Meta
	Payload RequestPayload
}

// ActionType implements store.Action.
func (a RequestAction) ActionType() store.ActionType {
	return a.Type
}

// IngestPayload is the outcome carried by an IngestAction: Success or
// Failure.
type IngestPayload interface {
	isIngestPayload()
}

// Success carries the data a request produced.
type Success struct {
	Data any
}

// Failure carries the error a request failed with.
type Failure struct {
	Err error
}

func (Success) isIngestPayload() {}
func (Failure) isIngestPayload() {}

// IngestAction completes a request. Error is true exactly when Payload is
// a Failure.
type IngestAction struct {
	Type    store.ActionType
	Error   bool
	Meta    Meta
	Payload IngestPayload
}

// ActionType implements store.Action.
func (a IngestAction) ActionType() store.ActionType {
	return a.Type
}

// Data returns the successful payload, or nil for a failure.
func (a IngestAction) Data() any {
	if s, ok := a.Payload.(Success); ok {
		return s.Data
	}
	return nil
}

// Err returns the failure, or nil for a success.
func (a IngestAction) Err() error {
	if f, ok := a.Payload.(Failure); ok {
		return f.Err
	}
	return nil
}

// RequestCreator builds RequestActions for one endpoint.
type RequestCreator struct {
	actionType store.ActionType
	resolve    Resolver
	buildURL   URLFunc
}

// Type is the tag of the actions this creator builds.
func (c RequestCreator) Type() store.ActionType {
	return c.actionType
}

// String returns the action tag.
func (c RequestCreator) String() string {
	return string(c.actionType)
}

// Create resolves the key and URL for params and returns the action. It has
// no side effects.
func (c RequestCreator) Create(params Params) RequestAction {
	if params == nil {
		params = Params{}
	}
	url := c.buildURL(params)
	return RequestAction{
		Type: c.actionType,
		Meta: Meta{
			Params: params,
			Path:   normalizeKey(c.resolve(params)),
			URL:    url,
		},
		Payload: RequestPayload{URL: url},
	}
}

// Match reports whether action is a RequestAction built by this creator.
func (c RequestCreator) Match(action store.Action) (RequestAction, bool) {
	a, ok := action.(RequestAction)
	if !ok || a.Type != c.actionType {
		return RequestAction{}, false
	}
	return a, true
}

// IngestCreator builds IngestActions for one endpoint.
type IngestCreator struct {
	actionType store.ActionType
}

// Type is the tag of the actions this creator builds.
func (c IngestCreator) Type() store.ActionType {
	return c.actionType
}

// String returns the action tag.
func (c IngestCreator) String() string {
	return string(c.actionType)
}

// Create wraps payload for the request described by meta. An error payload
// produces a Failure, anything else a Success.
func (c IngestCreator) Create(payload any, meta Meta) IngestAction {
	if err, ok := payload.(error); ok {
		return IngestAction{
			Type:    c.actionType,
			Error:   true,
			Meta:    meta,
			Payload: Failure{Err: err},
		}
	}
	return IngestAction{
		Type:    c.actionType,
		Meta:    meta,
		Payload: Success{Data: payload},
	}
}

// Match reports whether action is an IngestAction built by this creator.
func (c IngestCreator) Match(action store.Action) (IngestAction, bool) {
	a, ok := action.(IngestAction)
	if !ok || a.Type != c.actionType {
		return IngestAction{}, false
	}
	return a, true
}

// ActionCreators is the request/ingest pair of an endpoint.
type ActionCreators struct {
	Request RequestCreator
	Ingest  IngestCreator
}

func newActionCreators(name string, resolve Resolver, buildURL URLFunc) ActionCreators {
	return ActionCreators{
		Request: RequestCreator{
			actionType: store.ActionType(name + requestTypeSuffix),
			resolve:    resolve,
			buildURL:   buildURL,
		},
		Ingest: IngestCreator{
			actionType: store.ActionType(name + ingestTypeSuffix),
		},
	}
}
