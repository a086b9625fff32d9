// Package main provides the entry point for the aidirectory CLI tool.
package main

import "github.com/aidirectory/aidirectory/cmd/aidirectory/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
