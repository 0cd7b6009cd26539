package main

import "github.com/runlet-dev/runlet/internal/cli"

func main() {
	cli.Execute()
}
