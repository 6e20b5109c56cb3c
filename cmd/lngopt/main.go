package main

import "lng-supply-optimizer/internal/adapters/cli"

func main() {
	cli.Execute()
}
