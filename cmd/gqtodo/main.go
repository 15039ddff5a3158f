package main

import (
	"os"

	"github.com/gqtodo/gqtodo/internal/cli"
	"github.com/gqtodo/gqtodo/internal/ui"
)

func main() {
	if err := cli.Execute(); err != nil {
		ui.Fail(err.Error())
		os.Exit(1)
	}
}
