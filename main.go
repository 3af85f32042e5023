package main

import "github.com/brogergvhs/komikcast/cmd"

func main() {
	cmd.Execute()
}
