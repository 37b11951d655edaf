package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/mod/module"

	"github.com/go-graft/graft/cmd/graft/internal/templates"
)

func init() {
	RegisterCommand(&Command{
		Name:  "init",
		Short: "Create a new graft project",
		Long: `Create a new graft project in a new directory.

This command creates:
  - A new directory at the specified path
  - go.mod with the specified module path
  - main.go with a starter application
  - scene.yaml with a sample scene document
  - graft.yaml with project configuration

The project name is derived from the directory basename.
The module path defaults to the project name if not specified.

Examples:
  graft init myapp
  graft init myapp github.com/username/myapp
  graft init ./projects/myapp
  graft init ./projects/myapp github.com/username/myapp`,
		Usage: "graft init <directory> [module-path]",
		Run:   runInit,
	})
}

// runInit creates a new graft project. The first argument is the directory
// path to create (which may be relative or absolute). The project name is
// derived from the directory's basename. An optional second argument
// overrides the Go module path, which otherwise defaults to the project name.
func runInit(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("directory is required\n\nUsage: graft init <directory> [module-path]")
	}

	raw := args[0]
	if strings.HasPrefix(raw, "~") {
		return fmt.Errorf("tilde (~) is not expanded by graft; use an absolute path or $HOME instead")
	}

	dir := filepath.Clean(raw)

	// Validate directory path before deriving anything from it
	if err := validateDirectory(dir); err != nil {
		return err
	}

	projectName := filepath.Base(dir)
	modulePath := projectName
	if len(args) > 1 {
		modulePath = args[1]
		// Bare project names like "myapp" are valid module paths for local
		// development, so only an explicitly given path is held to the
		// stricter published-module rules.
		if err := module.CheckPath(modulePath); err != nil {
			return fmt.Errorf("invalid module path %q: %w", modulePath, err)
		}
	}

	if modulePath == "" {
		return fmt.Errorf("module path cannot be empty")
	}

	// Validate project name
	if err := validateProjectName(projectName); err != nil {
		return fmt.Errorf("invalid project name %q (derived from directory basename): %w", projectName, err)
	}

	// Scaffold the project directory and template files
	if err := scaffoldProject(dir, modulePath); err != nil {
		return err
	}

	// Resolve Go dependencies
	fmt.Println("  Adding graft dependency...")
	getCmd := exec.Command("go", "get", "github.com/go-graft/graft@latest")
	getCmd.Dir = dir
	getCmd.Stdout = os.Stdout
	getCmd.Stderr = os.Stderr
	if err := getCmd.Run(); err != nil {
		fmt.Println("  Warning: go get failed (this is expected if graft is not yet published)")
	}

	fmt.Println("  Running go mod tidy...")
	tidyCmd := exec.Command("go", "mod", "tidy")
	tidyCmd.Dir = dir
	tidyCmd.Stdout = os.Stdout
	tidyCmd.Stderr = os.Stderr
	if err := tidyCmd.Run(); err != nil {
		fmt.Println("  Warning: go mod tidy failed")
	}

	fmt.Println()
	fmt.Printf("Project created successfully!\n\n")
	fmt.Printf("Next steps:\n")
	fmt.Printf("  cd %s\n", dir)
	fmt.Printf("  go run .               # Run the starter app\n")
	fmt.Printf("  graft render           # Render scene.yaml once\n")
	fmt.Printf("  graft render --watch   # Re-render on every edit\n")

	return nil
}

// scaffoldProject creates the project directory and writes the template files.
// This is the portion of init that has no side effects beyond the filesystem,
// making it safe to call from tests without network access.
func scaffoldProject(dir, modulePath string) error {
	// Check if directory already exists
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}

	fmt.Printf("Creating new graft project: %s\n", filepath.Base(dir))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data := &templates.TemplateData{
		ModulePath: modulePath,
		AppName:    filepath.Base(dir),
	}

	initFiles := []struct {
		templatePath string
		destName     string
	}{
		{"init/go.mod.tmpl", "go.mod"},
		{"init/main.go.tmpl", "main.go"},
		{"init/scene.yaml.tmpl", "scene.yaml"},
		{"init/graft.yaml.tmpl", "graft.yaml"},
	}

	for _, f := range initFiles {
		if err := writeInitTemplate(dir, f.templatePath, f.destName, data); err != nil {
			safeRemoveAll(dir)
			return err
		}
		fmt.Printf("  Created %s\n", f.destName)
	}

	return nil
}

func writeInitTemplate(projectDir, templatePath, destName string, data *templates.TemplateData) error {
	content, err := templates.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}

	out, err := templates.ProcessTemplate(string(content), data)
	if err != nil {
		return fmt.Errorf("failed to process template %s: %w", templatePath, err)
	}

	destPath := filepath.Join(projectDir, destName)
	if err := os.WriteFile(destPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", destName, err)
	}

	return nil
}

// validateDirectory rejects directory paths that would be dangerous to create or
// clean up. This includes filesystem roots (/, C:\), the current/parent directory,
// and root-level absolute paths (e.g. /etc, C:\Users).
func validateDirectory(dir string) error {
	// The "" case is not reachable via runInit (filepath.Clean converts it to
	// "."), but is included for direct callers of validateDirectory.
	// "/" is kept explicitly because isVolumeRoot won't match "/" on Windows
	// (where the separator is \), yet "/" still refers to the current drive root.
	switch dir {
	case "", "/", ".", "..":
		return fmt.Errorf("directory %q is not a valid project location", dir)
	}
	// Reject filesystem roots (\, C:\, etc.)
	if isVolumeRoot(dir) {
		return fmt.Errorf("directory %q is not a valid project location", dir)
	}
	// Reject root-level absolute paths (e.g. /etc, /home, C:\Users)
	if filepath.IsAbs(dir) && isVolumeRoot(filepath.Dir(dir)) {
		return fmt.Errorf("refusing to create project at root-level path %q", dir)
	}
	return nil
}

// isVolumeRoot reports whether dir is a filesystem root. On Unix this is "/",
// on Windows this covers drive roots like "C:\" and the bare root "\".
func isVolumeRoot(dir string) bool {
	return dir == filepath.VolumeName(dir)+string(filepath.Separator)
}

// safeRemoveAll removes a directory only if the path passes validateDirectory.
// It silently no-ops for dangerous paths rather than returning an error, since
// it is called on cleanup paths where the original error should not be masked.
func safeRemoveAll(dir string) {
	if validateDirectory(dir) != nil {
		return
	}
	os.RemoveAll(dir)
}

var validProjectName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// validateProjectName checks that a project name (derived from the directory
// basename) is a valid identifier: starts with a letter, contains only letters,
// digits, underscores, and hyphens.
func validateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	// These prefix checks are redundant with the regex below, but produce
	// more actionable error messages for common mistakes (hidden dirs, flags).
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("project name cannot start with a dot")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("project name cannot start with a hyphen")
	}
	if !validProjectName.MatchString(name) {
		return fmt.Errorf("project name must start with a letter and contain only letters, numbers, underscores, and hyphens")
	}
	return nil
}
