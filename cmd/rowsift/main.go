// Command rowsift is an interactive filter dashboard for tabular datasets.
package main

import (
	"os"

	"github.com/Iron-Ham/rowsift/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
