package main

import (
	"os"

	garagecmder "github.com/motorlogic/garage/cmd/garage"
)

func main() {
	cmd := garagecmder.NewGarageCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
