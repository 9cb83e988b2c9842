package main

import "github.com/kiforge/kiforge/cmd"

func main() {
	cmd.Execute()
}
