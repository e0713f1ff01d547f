package main

import "github.com/marvalsa/Integration-Web-Site/cmd"

func main() {
	cmd.Execute()
}
