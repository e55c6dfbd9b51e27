package main

import "github.com/planit-app/planit/internal/cli"

func main() {
	cli.Execute()
}
