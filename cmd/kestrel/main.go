// Command kestrel is the entry point for the Kestrel task board CLI.
package main

import (
	"os"

	"github.com/driftlock/kestrel/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
