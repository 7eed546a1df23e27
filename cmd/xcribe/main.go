package main

import (
	"fmt"
	"os"

	"xcribe/cmd/xcribe/cmd"
	"xcribe/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
