package main

import (
	"os"

	"github.com/authorsite/authorsite/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
