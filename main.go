package main

import (
	"os"

	"github.com/caawww/data-vis/cli"
)

func main() {
	os.Exit(cli.Execute())
}
