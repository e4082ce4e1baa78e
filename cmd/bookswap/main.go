// Package main is the entry point for the bookswap CLI client.
package main

import (
	"github.com/NikhilTirunagiri/GMUBookSwap/cmd/bookswap/cmd"
)

func main() {
	cmd.Execute()
}
