package main

import "github.com/kamusis/deck-cli/cmd"

func main() {
	cmd.Execute()
}
