package main

import (
	"stochwalk/internal/cli"
)

func main() {
	cli.Execute()
}
