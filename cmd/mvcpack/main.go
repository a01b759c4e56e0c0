// Command mvcpack renders the tasks module from the command line. It builds
// the module, composes a mode with its decorators, mounts the result into
// the page and prints the document.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
