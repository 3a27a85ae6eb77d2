package main

import (
	"os"

	"github.com/schoolofai/lessonreview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
