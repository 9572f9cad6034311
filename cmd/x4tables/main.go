package main

import "x4tables/internal/cli"

func main() {
	cli.Execute()
}
