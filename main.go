package main

import (
	"os"

	"github.com/pbhenson/icinga-plugins/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(3)
	}
}
