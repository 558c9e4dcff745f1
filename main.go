package main

import "github.com/naka-gawa/pr-agent/cmd"

func main() {
	cmd.Execute()
}
