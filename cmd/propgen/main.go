package main

import "github.com/mvp-joe/propgen/internal/cli"

func main() {
	cli.Execute()
}
