package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/meza/translationkeys/cmd/translationkeys"
	"github.com/meza/translationkeys/internal/perf"
)

const perfLifecycleExecute = "app.lifecycle.execute"

type runDeps struct {
	execute func(context.Context, []string) error
	args    []string
}

func main() {
	os.Exit(runWithDeps(runDeps{
		execute: translationkeys.Execute,
		args:    os.Args[1:],
	}))
}

// runWithDeps returns the process exit code. The command prints its own errors.
func runWithDeps(deps runDeps) int {
	region := perf.StartRegion(perfLifecycleExecute)
	err := deps.execute(context.Background(), deps.args)
	region.End()

	if err != nil {
		return 1
	}
	return 0
}
