package main

import "streamscout/cmd"

func main() {
	cmd.Execute()
}
