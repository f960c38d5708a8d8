// Command foodex2validate validates FoodEx2 expressions from the command
// line against a loaded catalogue database (spec.md §6).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
