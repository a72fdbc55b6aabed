package main

import (
	"os"

	"boomiis-api/app"
)

func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
