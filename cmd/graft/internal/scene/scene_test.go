package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-graft/graft/pkg/core"
	grafterrors "github.com/go-graft/graft/pkg/errors"
	"github.com/go-graft/graft/pkg/text"
)

const sampleScene = `
title: sample
root:
  type: tag
  name: doc
  children:
    - type: greeting
      props: {name: World}
    - type: text
      value: " "
    - type: repeat
      props: {count: 3, separator: ","}
      children: [{type: text, value: "x"}]
`

func buildScene(t *testing.T, source string, tick *core.Notifier) (*core.Scheduler, *core.TreeNode) {
	t.Helper()
	doc, err := Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	value, err := NewCompiler(tick).Compile(doc)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	sched := core.NewScheduler()
	return sched, sched.Build(value, nil, nil)
}

func TestCompileSampleScene(t *testing.T) {
	_, tree := buildScene(t, sampleScene, nil)
	want := "Hello, World! x,x,x"
	if got := text.Render(tree); got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestCompileFalsyValues(t *testing.T) {
	source := `
root:
  type: group
  children:
    - {type: text, value: null}
    - {type: text, value: ","}
    - {type: text, value: false}
    - {type: text, value: ","}
    - {type: text, value: 0}
    - {type: text, value: ","}
    - {type: text, value: .nan}
`
	_, tree := buildScene(t, source, nil)
	if got := text.Render(tree); got != ",,0,NaN" {
		t.Errorf("rendered %q, want %q", got, ",,0,NaN")
	}
}

func TestCompileKeyedNode(t *testing.T) {
	source := `
root:
  type: tag
  name: row
  key: header
  children: [{type: text, value: hi}]
`
	_, tree := buildScene(t, source, nil)
	if got := tree.Key(); got != "header" {
		t.Errorf("root key = %v, want %q", got, "header")
	}
}

func TestParseRequiresRoot(t *testing.T) {
	if _, err := Parse([]byte("title: empty\n")); err == nil {
		t.Fatal("Parse() = nil error for a rootless document")
	}
}

func TestCompileUnknownKind(t *testing.T) {
	doc, err := Parse([]byte("root: {type: carousel}\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	_, err = NewCompiler(nil).Compile(doc)
	var sceneErr *grafterrors.SceneError
	if !errors.As(err, &sceneErr) {
		t.Fatalf("Compile() error = %v (%T), want *errors.SceneError", err, err)
	}
	if sceneErr.Node != "carousel" {
		t.Errorf("SceneError.Node = %q, want %q", sceneErr.Node, "carousel")
	}
}

func TestCompileTagRequiresName(t *testing.T) {
	doc, err := Parse([]byte("root: {type: tag}\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, err = NewCompiler(nil).Compile(doc); err == nil {
		t.Fatal("Compile() = nil error for a nameless tag")
	}
}

func TestCounterAdvancesOnTick(t *testing.T) {
	source := `
root:
  type: counter
  props: {start: 10, step: 5, label: "n="}
`
	tick := core.NewNotifier()
	doc, err := Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	compiler := NewCompiler(tick)
	value, err := compiler.Compile(doc)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	sched := core.NewScheduler()
	var tree *core.TreeNode
	var render func()
	render = func() { tree = sched.Build(value, tree, render) }
	render()
	if got := text.Render(tree); got != "n=10" {
		t.Fatalf("rendered %q, want %q", got, "n=10")
	}

	tick.Notify()
	sched.Rerender()
	if got := text.Render(tree); got != "n=15" {
		t.Errorf("rendered %q after tick, want %q", got, "n=15")
	}
}

func TestRecompileKeepsCounterState(t *testing.T) {
	before := `
root:
  type: group
  children:
    - {type: counter, props: {start: 1}}
`
	after := `
root:
  type: group
  children:
    - {type: counter, props: {start: 1}}
    - {type: text, value: "!"}
`
	tick := core.NewNotifier()
	compiler := NewCompiler(tick)
	sched := core.NewScheduler()

	doc, err := Parse([]byte(before))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	value, err := compiler.Compile(doc)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	var tree *core.TreeNode
	var render func()
	render = func() { tree = sched.Build(value, tree, render) }
	render()

	tick.Notify()
	sched.Rerender()
	if got := text.Render(tree); got != "2" {
		t.Fatalf("rendered %q after tick, want %q", got, "2")
	}

	// Recompiling an edited document with the same compiler keeps the
	// counter's position identity, so its count survives the edit.
	doc, err = Parse([]byte(after))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	value, err = compiler.Compile(doc)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	tree = sched.Build(value, tree, render)
	if got := text.Render(tree); got != "2!" {
		t.Errorf("rendered %q after recompile, want %q", got, "2!")
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(sampleScene), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Title != "sample" {
		t.Errorf("Title = %q, want %q", doc.Title, "sample")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() = nil error for a missing file")
	}
}
