package main

import "github.com/lepinkainen/moviesearch/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
