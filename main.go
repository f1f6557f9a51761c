package main

import "github.com/mvwi/wip/internal/cmd"

func main() {
	cmd.Execute()
}
