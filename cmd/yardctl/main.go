package main

import "github.com/andrescamacho/containeryard-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
