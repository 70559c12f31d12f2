// Package main provides the steane CLI.
package main

import "github.com/mesh-intelligence/steane/internal/cli"

func main() {
	cli.Execute()
}
