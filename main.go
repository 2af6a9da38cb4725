package main

import "github.com/eng618/wfc-loom/cmd"

func main() {
	cmd.Execute()
}
