package main

import "github.com/obriclabs/corpgraph/internal/cli"

func main() {
	cli.Execute()
}
