package main

import (
	"github.com/snaphunt/snaphunt/internal/cli"
)

func main() {
	cli.Execute()
}
