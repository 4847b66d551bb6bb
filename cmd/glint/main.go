// Package main is the single-binary entrypoint for Glint.
package main

import "github.com/glintlab/glint/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
