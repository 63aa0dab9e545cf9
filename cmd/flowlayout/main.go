package main

import (
	"github.com/vine-io/flowlayout/cmd/flowlayout/commands"
)

func main() {
	commands.Execute()
}
