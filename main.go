package main

import "github.com/theirongolddev/finbuddy/cmd"

func main() {
	cmd.Execute()
}
