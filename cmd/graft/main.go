// Command graft is the CLI for the graft component framework: project
// scaffolding, scene rendering, and built-in demos.
package main

import (
	"fmt"
	"os"

	"github.com/go-graft/graft/cmd/graft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
