// Command check-duplicates runs the similarity scanner over the configured content directory.
package main

import (
	"os"

	"quizlint/internal/cli"
)

func main() {
	os.Exit(cli.Run(append([]string{"scan"}, os.Args[1:]...), os.Stdout, os.Stderr))
}
