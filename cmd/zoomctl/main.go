// Command zoomctl issues authenticated requests against the Zoom REST API and
// prints the normalized result as JSON.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
