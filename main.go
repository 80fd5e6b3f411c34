package main

import "fediblock-sync/cmd"

func main() {
	cmd.Execute()
}
