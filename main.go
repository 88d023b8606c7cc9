package main

import (
	"os"

	"github.com/crosscheck-dev/crosscheck/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
