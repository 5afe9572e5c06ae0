// Package main provides the entry point for kilikali.
//
// Usage:
//
//	kilikali [flags] [path...]
//	kilikali keys
package main

import "github.com/kilikali/kilikali/internal/cli"

func main() {
	cli.Execute()
}
