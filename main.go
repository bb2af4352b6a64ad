package main

import "nathanbeddoewebdev/sysdash/cmd"

func main() {
	cmd.Execute()
}
