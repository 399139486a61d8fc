package main

import "github.com/kestrelworks/tsmod/cmd"

func main() {
	cmd.Execute()
}
