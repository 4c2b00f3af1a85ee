//go:build !cgo

package main

import "fmt"

// runIndex requires the KuzuDB backend, which needs a CGO build.
func runIndex(_ []string) error {
	return fmt.Errorf("the index command requires a CGO-enabled build")
}
