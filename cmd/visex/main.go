package main

import "github.com/visarch/visex/cmd/visex/cmd"

func main() {
	cmd.Execute()
}
