package errors

import (
	"testing"
	"time"
)

func TestGraftErrorString(t *testing.T) {
	err := &GraftError{
		Op:   "test.operation",
		Kind: KindScene,
		Err:  &SceneError{Node: "repeat", Err: &GraftError{Op: "inner"}},
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
}

func TestGraftErrorWithComponent(t *testing.T) {
	err := &GraftError{
		Op:        "test.operation",
		Kind:      KindRender,
		Component: "core.Func",
		Err:       &SceneError{Node: "counter", Err: nil},
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
	want := "component=core.Func"
	if !contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindRender, "render"},
		{KindState, "state"},
		{KindScene, "scene"},
		{KindConfig, "config"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorStringWithOp(t *testing.T) {
	err := &PanicError{
		Op:        "render.watch",
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic in render.watch: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestSceneErrorString(t *testing.T) {
	err := &SceneError{
		Path: "scene.yaml",
		Node: "repeat",
		Err:  &PanicError{Value: "boom"},
	}
	got := err.Error()
	if !contains(got, "scene.yaml") || !contains(got, `"repeat"`) {
		t.Errorf("SceneError.Error() = %q, should name the path and node", got)
	}
}

func TestReport(t *testing.T) {
	var capturedErr *GraftError
	handler := &testHandler{
		onError: func(err *GraftError) {
			capturedErr = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&GraftError{
		Op:   "test.op",
		Kind: KindConfig,
		Err:  &SceneError{Node: "root", Err: nil},
	})

	if capturedErr == nil {
		t.Error("expected error to be captured")
	}
	if capturedErr.Op != "test.op" {
		t.Errorf("Op = %q, want %q", capturedErr.Op, "test.op")
	}
	if capturedErr.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportPanic(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	ReportPanic(&PanicError{
		Value:     "test panic value",
		Timestamp: time.Now(),
	})

	if capturedPanic == nil {
		t.Error("expected panic to be captured")
	}
	if capturedPanic.Value != "test panic value" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "test panic value")
	}
}

func TestRecover(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if capturedPanic == nil {
		t.Error("expected panic to be recovered and captured")
	}
	if capturedPanic.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "intentional test panic")
	}
	if capturedPanic.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", capturedPanic.Op, "test.recover")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	oldHandler := DefaultHandler
	SetHandler(&testHandler{})
	defer SetHandler(oldHandler)

	var got any
	func() {
		defer RecoverWithCallback("test.recover", func(r any) {
			got = r
		})
		panic("callback panic")
	}()

	if got != "callback panic" {
		t.Errorf("callback received %v, want %q", got, "callback panic")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	// Stack should contain some runtime info (either test function or testing infrastructure)
	if !contains(stack, "testing") && !contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	if DefaultHandler == nil {
		t.Error("SetHandler(nil) should set default LogHandler, not nil")
	}
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestRenderErrorString(t *testing.T) {
	// Test with panic value
	err := &RenderError{
		Component: "scene.counter",
		Recovered: "nil pointer dereference",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic rendering scene.counter: nil pointer dereference"
	if got != want {
		t.Errorf("RenderError.Error() = %q, want %q", got, want)
	}

	// Test with unsupported value
	err2 := &RenderError{
		Component: "core.reconcile",
		Value:     struct{ X int }{X: 1},
		Timestamp: time.Now(),
	}
	got2 := err2.Error()
	if !contains(got2, "unsupported render value") {
		t.Errorf("RenderError.Error() = %q, should contain 'unsupported render value'", got2)
	}

	// Test unknown error
	err3 := &RenderError{
		Component: "core.reconcile",
	}
	got3 := err3.Error()
	want3 := "unknown error rendering core.reconcile"
	if got3 != want3 {
		t.Errorf("RenderError.Error() = %q, want %q", got3, want3)
	}
}

func TestReportRenderError(t *testing.T) {
	var capturedErr *RenderError
	handler := &testHandler{
		onRenderError: func(err *RenderError) {
			capturedErr = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	ReportRenderError(&RenderError{
		Component: "scene.greeting",
		Recovered: "test panic",
	})

	if capturedErr == nil {
		t.Error("expected render error to be captured")
	}
	if capturedErr.Component != "scene.greeting" {
		t.Errorf("Component = %q, want %q", capturedErr.Component, "scene.greeting")
	}
	if capturedErr.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

type testHandler struct {
	onError       func(*GraftError)
	onPanic       func(*PanicError)
	onRenderError func(*RenderError)
}

func (h *testHandler) HandleError(err *GraftError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func (h *testHandler) HandleRenderError(err *RenderError) {
	if h.onRenderError != nil {
		h.onRenderError(err)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > 0 && containsAt(s, substr, 0))
}

func containsAt(s, substr string, start int) bool {
	for i := start; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
