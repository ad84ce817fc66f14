package main

import (
	"github.com/jjtimmons/synbio/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
