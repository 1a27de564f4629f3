// Package main provides the entry point for the walremap CLI tool.
package main

import (
	"walremap/cmd"
)

func main() {
	cmd.Execute()
}
