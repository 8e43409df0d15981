// Command monkey runs Monkey programs and hosts the interactive REPL.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
