package main

import (
	"os"

	"github.com/lballo/Site-laura-4/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
