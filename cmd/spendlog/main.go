package main

import "spendlog/internal/cli"

func main() {
	cli.Execute()
}
