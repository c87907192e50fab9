// Package main is the entry point for the tidywarn CLI.
package main

import "tidywarn.dev/pkg/tidywarn/cmd"

func main() {
	cmd.Execute()
}
