// Package main is the entry point for the smartban CLI, which compares the
// recent map history of both teams in a FACEIT match room.
package main

import "github.com/pable/go-cs-smartban/cmd"

func main() {
	cmd.Execute()
}
