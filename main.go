package main

import "github.com/sensorscope/sensorscope/cmd"

func main() {
	cmd.Execute()
}
