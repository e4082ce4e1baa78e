// Package main is the entry point for bookswapd, the GMU BookSwap API
// server.
package main

import (
	"os"

	"github.com/NikhilTirunagiri/GMUBookSwap/cmd/bookswapd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
