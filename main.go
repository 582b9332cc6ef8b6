package main

import (
	"os"

	"github.com/spjmurray/tco/cmd"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cmd.SetVersion(version)
	os.Exit(cmd.Execute())
}
