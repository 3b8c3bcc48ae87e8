// Command kanjiwords generates the jōyō kanji → example words table.
//
// Subcommands:
//
//	generate   build words-by-kanji.json (and optionally publish it)
//	coverage   list target kanji without words in a generated file
//	migrate    apply PostgreSQL migrations for the publish target
//	version    print build information
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"fmt"
	"os"

	"github.com/heartmarshall/kanjiwords/cmd/kanjiwords/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
