// Package main provides the entry point for JavaMem.
// JavaMem is an educational Java memory-model simulator built on Akita.
//
// For the full CLI, use: go run ./cmd/javamem
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("JavaMem - Java Memory Model Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: javamem [options] <program.jm>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to a javamem.yaml/.json timing configuration file")
	fmt.Println("  -seed      Seed for randomized GC sweep delays")
	fmt.Println("  -trace     Print every model-change event")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/javamem' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/javamem' instead.")
	}
}
