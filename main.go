package main

import "github.com/typeminer/typeminer/internal/cli"

func main() {
	cli.Execute()
}
