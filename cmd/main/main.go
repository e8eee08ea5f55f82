package main

import "github.com/matt-steen/zenith/pkg/cli"

func main() {
	cli.Execute()
}
