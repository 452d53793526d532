// Command questdeck-notify dispatches Questdeck desktop notifications from
// the command line. It is primarily a manual test surface for the
// notification pipeline.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
