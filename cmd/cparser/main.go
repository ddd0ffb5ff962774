// Command cparser is the entry point for the C static analyzer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/kon1790/cparser/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
