package main

import (
	"os"

	"github.com/poststats/poststats/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
