package main

import "github.com/Daskott/folio/cmd"

func main() {
	cmd.Execute()
}
