package main

import (
	"os"

	"github.com/roach88/wman/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
