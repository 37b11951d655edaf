// Package errors provides structured error handling for the graft reconciler.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindRender indicates a failure while rendering a component.
	KindRender
	// KindState indicates a state commit or queue error.
	KindState
	// KindScene indicates a scene document parsing failure.
	KindScene
	// KindConfig indicates a project configuration error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindRender:
		return "render"
	case KindState:
		return "state"
	case KindScene:
		return "scene"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// GraftError represents a structured error in the graft reconciler.
type GraftError struct {
	// Op is the operation that failed (e.g., "scene.Load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Component is the component type name, if applicable.
	Component string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *GraftError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *GraftError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "render.watch").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// SceneError represents a failure to interpret a scene document node.
type SceneError struct {
	// Path is the scene file the node came from, if known.
	Path string
	// Node is the node kind that failed (e.g., "repeat").
	Node string
	// Err is the underlying error.
	Err error
}

func (e *SceneError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("scene %s: node %q: %v", e.Path, e.Node, e.Err)
	}
	return fmt.Sprintf("scene node %q: %v", e.Node, e.Err)
}

func (e *SceneError) Unwrap() error {
	return e.Err
}

// RenderError represents a failure during component rendering: either a
// render that produced a value the reconciler cannot map to a tree, or a
// panic raised inside a component's render.
type RenderError struct {
	// Component is the type name of the component (or value) that failed.
	Component string
	// Value is the unsupported render result (nil for panics).
	Value any
	// Recovered is the panic value (nil for unsupported results).
	Recovered any
	// Err is the underlying error, if any.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RenderError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic rendering %s: %v", e.Component, e.Recovered)
	}
	if e.Value != nil {
		return fmt.Sprintf("unsupported render value %T in %s", e.Value, e.Component)
	}
	if e.Err != nil {
		return fmt.Sprintf("error rendering %s: %v", e.Component, e.Err)
	}
	return fmt.Sprintf("unknown error rendering %s", e.Component)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Handler receives errors reported by graft.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *GraftError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleRenderError is called when a component render fails.
	HandleRenderError(err *RenderError)
}
