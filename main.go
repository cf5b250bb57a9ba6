package main

import "github.com/diogo/voicechat/internal/commands"

func main() {
	commands.Execute()
}
