// Command cc-toolgate is the entrypoint wiring the cobra command surface
// to the process, calling cli.Execute the way the teacher's
// internal/cli.Execute is meant to be invoked from a thin main package.
package main

import (
	"fmt"
	"os"

	"github.com/anthropics/cc-toolgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
