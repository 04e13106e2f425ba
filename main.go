package main

import "github.com/chriserin/stepbind/cmd"

func main() {
	cmd.Execute()
}
