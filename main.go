// Package main points at the rvsim command line tool in cmd/rvsim.
package main

import "fmt"

func main() {
	fmt.Println("rvsim: use 'go run ./cmd/rvsim --help'")
}
