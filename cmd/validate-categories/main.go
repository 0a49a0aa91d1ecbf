// Command validate-categories checks and corrects question sub-categories against the taxonomy.
package main

import (
	"os"

	"quizlint/internal/cli"
)

func main() {
	os.Exit(cli.Run(append([]string{"validate"}, os.Args[1:]...), os.Stdout, os.Stderr))
}
