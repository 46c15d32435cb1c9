package main

import "github.com/xvierd/pomodoro-timer/cmd"

func main() {
	cmd.Execute()
}
