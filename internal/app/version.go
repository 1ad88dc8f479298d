package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version information, overridden at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "bigcalc %s (commit %s, built %s, %s)\n",
		Version, Commit, Date, runtime.Version())
}
