package main

import "github.com/arl/greenreader/cmd/greenreader/cmd"

func main() {
	cmd.Execute()
}
