package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/go-graft/graft/cmd/graft/internal/config"
	"github.com/go-graft/graft/cmd/graft/internal/scene"
	"github.com/go-graft/graft/pkg/core"
	grafterrors "github.com/go-graft/graft/pkg/errors"
	"github.com/go-graft/graft/pkg/text"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a scene document to text",
		Long: `Render a YAML scene document to text.

The scene is compiled to a component tree, built through the scheduler,
and serialized with the text backend. Without --watch the tree is built
once and printed. With --watch the scene file is re-read on every edit
and rebuilt against the previous tree, so stateful components (counters)
keep their state across edits; counters also advance once per second.

With no scene file argument, the path comes from graft.yaml in the
enclosing project (default: scene.yaml next to go.mod).

Examples:
  graft render scene.yaml
  graft render scene.yaml --out out.txt
  graft render --watch`,
		Usage: "graft render [scene-file] [--watch] [--out file]",
		Run:   runRender,
	})
}

// frameInterval is how often watch mode advances counters.
const frameInterval = time.Second

// debounceInterval is how long watch mode waits for further writes before
// reloading, since editors commonly emit several events per save.
const debounceInterval = 250 * time.Millisecond

func runRender(args []string) error {
	var (
		scenePath string
		watch     bool
		outPath   string
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--watch":
			watch = true
		case "--out":
			if i+1 >= len(args) {
				return fmt.Errorf("--out requires a file path")
			}
			outPath = args[i+1]
			i++
		default:
			if strings.HasPrefix(args[i], "--") {
				return fmt.Errorf("unknown flag %q for render", args[i])
			}
			if scenePath != "" {
				return fmt.Errorf("unexpected argument %q", args[i])
			}
			scenePath = args[i]
		}
	}

	if scenePath == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return fmt.Errorf("no scene file given and no project found: %w", err)
		}
		cfg, err := config.Resolve(root)
		if err != nil {
			return err
		}
		scenePath = cfg.ScenePath
	}

	if watch {
		if outPath != "" {
			return fmt.Errorf("--watch cannot be combined with --out")
		}
		return watchScene(scenePath)
	}

	return renderOnce(scenePath, outPath)
}

// renderOnce loads, compiles, builds, and serializes the scene a single time.
func renderOnce(scenePath, outPath string) error {
	doc, err := scene.Load(scenePath)
	if err != nil {
		return err
	}

	content, err := scene.NewCompiler(nil).Compile(doc)
	if err != nil {
		return err
	}

	sched := core.NewScheduler()
	tree := sched.Build(content, nil, nil)
	output := text.Render(tree)

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(output+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		return nil
	}

	fmt.Println(output)
	return nil
}

// watchScene renders the scene, then re-renders on every file change until
// interrupted. The previous tree is reused on each rebuild, so component
// instances whose position survives the edit keep their state.
func watchScene(scenePath string) error {
	absPath, err := filepath.Abs(scenePath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors typically replace
	// the file on save, which silently drops a watch placed on the file
	// itself.
	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	reload := make(chan struct{}, 1)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return pumpFileEvents(ctx, watcher, absPath, reload)
	})
	g.Go(func() error {
		return renderLoop(ctx, absPath, reload)
	})

	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", scenePath)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// pumpFileEvents filters watcher events down to the target file and emits a
// single debounced reload signal per burst of writes.
func pumpFileEvents(ctx context.Context, watcher *fsnotify.Watcher, target string, reload chan<- struct{}) error {
	var mu sync.Mutex
	var pending *time.Timer

	defer func() {
		mu.Lock()
		if pending != nil {
			pending.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			mu.Lock()
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(debounceInterval, func() {
				// A reload is already queued; collapsing into it is fine
				// because the loop always re-reads the file.
				select {
				case reload <- struct{}{}:
				default:
				}
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

// renderLoop owns the scheduler. All builds, flushes, and tick notifications
// happen on this goroutine; other goroutines communicate through channels.
func renderLoop(ctx context.Context, scenePath string, reload <-chan struct{}) error {
	tick := core.NewNotifier()
	compiler := scene.NewCompiler(tick)
	sched := core.NewScheduler()

	var (
		content any
		tree    *core.TreeNode
	)

	var build, safeBuild func()
	build = func() {
		tree = sched.Build(content, tree, safeBuild)
		fmt.Println(text.Render(tree))
	}
	safeBuild = func() {
		defer grafterrors.RecoverWithCallback("render.watch", func(r any) {
			fmt.Fprintln(os.Stderr, "render failed; keeping last good output")
		})
		build()
	}

	compile := func() (any, error) {
		doc, err := scene.Load(scenePath)
		if err != nil {
			return nil, err
		}
		return compiler.Compile(doc)
	}

	// The initial load is strict: a scene that has never rendered is a
	// configuration error, not a live-edit mistake.
	compiled, err := compile()
	if err != nil {
		return err
	}
	content = compiled
	safeBuild()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-reload:
			compiled, err := compile()
			if err != nil {
				fmt.Fprintf(os.Stderr, "scene error: %v\n", err)
				continue
			}
			content = compiled
			safeBuild()

		case <-ticker.C:
			tick.Notify()
			if sched.Pending() > 0 {
				sched.Rerender()
			}
		}
	}
}
