// Command deconst is the CLI collaborator spec.md §1/§6 describes:
// it translates flags and an optional YAML file into a Configuration
// record, feeds source through internal/pipeline, and owns exit codes
// and I/O — none of which internal/pipeline's core touches directly.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/deconst/cmd/deconst/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
