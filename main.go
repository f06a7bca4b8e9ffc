// Command linkstat reports the size of a directory tree with and without
// hard-linked files.
package main

import (
	"fmt"
	"os"

	"github.com/go-errors/errors"

	"github.com/idelchi/linkstat/internal/cli"
)

// version is set via ldflags.
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		if os.Getenv("DEBUG") == "TRUE" {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, 0).ErrorStack())
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}
