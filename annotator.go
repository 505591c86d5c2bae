package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rtm0/ccammeta/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
