package main

import "toolchain-fixtures/internal/cli"

func main() {
	cli.Execute()
}
