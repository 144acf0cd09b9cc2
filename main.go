package main

import (
	"context"
	"os"

	"github.com/bushkit/bush/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := cli.Execute(context.Background(), version, commit, date); err != nil {
		return 1
	}
	return 0
}
