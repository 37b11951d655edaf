// Package templates provides embedded template files for project creation.
package templates

import (
	"embed"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed init/*
var FS embed.FS

// TemplateData contains the data for template substitution.
type TemplateData struct {
	ModulePath string // e.g., "github.com/username/my_app"
	AppName    string // e.g., "my_app"
}

// ProcessTemplate processes a template string with the given data.
func ProcessTemplate(content string, data *TemplateData) (string, error) {
	tmpl, err := template.New("").Parse(content)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ListFiles returns all files in the embedded filesystem under the given path.
func ListFiles(path string) ([]string, error) {
	var files []string

	err := fs.WalkDir(FS, path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})

	return files, err
}

// ReadFile reads a file from the embedded filesystem.
func ReadFile(path string) ([]byte, error) {
	return FS.ReadFile(path)
}

// GetInitFiles returns the list of init template files.
func GetInitFiles() ([]string, error) {
	return ListFiles("init")
}
