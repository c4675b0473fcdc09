package main

import "attrib/internal/cli"

func main() {
	cli.Execute()
}
