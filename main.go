package main

import "github.com/vilkasoft/backoffice/cmd"

func main() {
	cmd.Execute()
}
