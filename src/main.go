package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/contre95/soulkeep/src/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(cli.ExitUsage)
	}
}
