package main

import "github.com/diogo/funkychat/internal/commands"

func main() {
	commands.Execute()
}
