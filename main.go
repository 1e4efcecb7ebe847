// Package main provides a minimal entry point for mcrecipe.
// mcrecipe is a Monte Carlo recipe engine: it compiles a declarative
// JSON recipe and runs it many thousands of times in parallel.
//
// For the full CLI, use: go run ./cmd/mcrecipe
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("mcrecipe - Monte Carlo recipe engine")
	fmt.Println("")
	fmt.Println("Usage: mcrecipe [--preview] [--workers N] <recipe.json>")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/mcrecipe' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/mcrecipe' instead.")
	}
}
