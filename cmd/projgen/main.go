package main

import "github.com/goliatone/go-projectgen/internal/cli"

func main() {
	cli.Execute()
}
