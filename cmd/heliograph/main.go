// Package main is the entry point for the heliograph application
package main

import (
	"github.com/ethpandaops/heliograph/cmd"
)

func main() {
	cmd.Execute()
}
