package endpoint

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors for configuration failures
var (
	// ErrInvalidConfig is matched by every *ConfigError
	ErrInvalidConfig = errors.New("endpoint: invalid configuration")

	// ErrInvalidName is returned when Config.Name is empty or blank
	ErrInvalidName = errors.New("endpoint: name must be a non-empty string")

	// ErrInvalidURL is returned when neither or both of Config.URL and
	// Config.URLFunc are set, or the template cannot be parsed
	ErrInvalidURL = errors.New("endpoint: url must be a template string or a function")

	// ErrMissingRequest is returned when Config.Request is nil
	ErrMissingRequest = errors.New("endpoint: request function is required")

	// ErrInvalidOption is returned when an Option set a nil dependency
	ErrInvalidOption = errors.New("endpoint: invalid option")
)

// ConfigError is returned by New when the configuration is unusable.
type ConfigError struct {
	// Endpoint is the configured name, possibly empty.
	Endpoint string
	// Problems lists every validation failure found.
	Problems []string
	// Cause joins the field-level sentinels that failed.
	Cause error
}

// Error implements error.
func (e *ConfigError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "configuration validation failed"
	if e.Endpoint != "" {
		msg = fmt.Sprintf("%s for %q", msg, e.Endpoint)
	}
	if len(e.Problems) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Problems, "; "))
	}
	return "endpoint: " + msg
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is makes errors.Is(err, ErrInvalidConfig) hold for every ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func joinErrors(errs []error) error {
	return stderrors.Join(errs...)
}

// RejectionError wraps a non-error value a request failed with (a panic
// inside a RequestFunc). Its message is the value formatted with fmt.Sprint.
type RejectionError struct {
	Value any
	stack errors.StackTrace
}

func newRejectionError(v any) *RejectionError {
	// pkg/errors records the call stack on construction; borrow it.
	st := errors.New("").(interface{ StackTrace() errors.StackTrace }).StackTrace()
	if len(st) > 1 {
		st = st[1:]
	}
	return &RejectionError{Value: v, stack: st}
}

// Error implements error.
func (e *RejectionError) Error() string {
	return fmt.Sprint(e.Value)
}

// ErrorName names coerced rejections like any generic error.
func (e *RejectionError) ErrorName() string {
	return "Error"
}

// StackTrace exposes where the rejection was recovered.
func (e *RejectionError) StackTrace() errors.StackTrace {
	return e.stack
}

// Fields keeps the raw value out of the serialized properties; it is already
// the message.
func (e *RejectionError) Fields() map[string]any {
	return nil
}

// toError coerces a failure reason into an error.
func toError(reason any) error {
	if err, ok := reason.(error); ok {
		return err
	}
	return newRejectionError(reason)
}

// ErrorInfo is the serialized form of a failed request stored in a
// KeyRecord.
type ErrorInfo struct {
	Name    string
	Message string
	Stack   string
	// Props holds any custom properties the error carried.
	Props map[string]any
}

// Error implements error so an ErrorInfo can be returned or wrapped.
func (e *ErrorInfo) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Name == "" || e.Name == "Error" {
		return e.Message
	}
	return e.Name + ": " + e.Message
}

// NewErrorInfo serializes err.
//
// Name comes from an ErrorName() string method, else the Go type name; plain
// errors from the errors and fmt packages are named "Error". Stack comes from
// a github.com/pkg/errors stack trace or a Stack() string method. Props come
// from a Fields() map[string]any method, else from the exported fields of a
// struct error value.
func NewErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	return &ErrorInfo{
		Name:    errorName(err),
		Message: err.Error(),
		Stack:   errorStack(err),
		Props:   errorProps(err),
	}
}

func errorName(err error) string {
	if n, ok := err.(interface{ ErrorName() string }); ok {
		return n.ErrorName()
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.PkgPath() {
	case "errors", "fmt", "github.com/pkg/errors":
		return "Error"
	}
	if t.Name() == "" {
		return "Error"
	}
	return t.Name()
}

func errorStack(err error) string {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	var st stackTracer
	if errors.As(err, &st) {
		return strings.TrimPrefix(fmt.Sprintf("%+v", st.StackTrace()), "\n")
	}
	if s, ok := err.(interface{ Stack() string }); ok {
		return s.Stack()
	}
	return ""
}

func errorProps(err error) map[string]any {
	if f, ok := err.(interface{ Fields() map[string]any }); ok {
		fields := f.Fields()
		if len(fields) == 0 {
			return nil
		}
		props := make(map[string]any, len(fields))
		for k, v := range fields {
			props[k] = v
		}
		return props
	}

	v := reflect.ValueOf(err)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var props map[string]any
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if props == nil {
			props = make(map[string]any)
		}
		props[f.Name] = v.Field(i).Interface()
	}
	return props
}
