package main

import (
	"os"

	"countdown/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
