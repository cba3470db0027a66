// Package main provides the entry point for legdis.
// legdis is a two-pass LEGv8 disassembler with branch target labeling.
//
// For the full CLI, use: go run ./cmd/legdis
package main

import (
	"fmt"
)

func main() {
	fmt.Println("legdis - LEGv8 Disassembler")
	fmt.Println("Run 'go run ./cmd/legdis -h' for usage.")
}
