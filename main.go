package main

import "github.com/winauto/windows-mcp/cmd"

func main() {
	cmd.Execute()
}
