package main

import "github.com/autogit/autogit/cmd"

func main() {
	cmd.Execute()
}
