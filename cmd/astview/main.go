// astview renders MicroML syntax trees in the terminal.
//
// Usage:
//
//	astview <command> [flags]
//
// Commands:
//
//	render    Parse source and print its syntax tree
//	version   Print version information
package main

import (
	"os"

	"github.com/Mr-Dark-debug/astview/cmd/astview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
