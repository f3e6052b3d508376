package main

import (
	"github.com/daedaleanai/xdlrc/cmd"
)

func main() {
	cmd.Execute()
}
