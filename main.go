package main

import (
	"os"

	"github.com/CareDesk-Admin/CareDesk-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
