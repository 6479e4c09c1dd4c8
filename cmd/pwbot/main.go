package main

import "os"

func main() {
	// Bad subcommands and flag-parsing failures exit 2; operational failures
	// inside a subcommand exit 1 from the subcommand itself.
	if err := Execute(); err != nil {
		os.Exit(2)
	}
}
