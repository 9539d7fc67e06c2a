package main

import "github.com/mindgraphix/platform/cmd"

func main() {
	cmd.Execute()
}
