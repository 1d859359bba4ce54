package main

import "github.com/efritioff/gtav-timer/internal/cli"

func main() {
	cli.Execute()
}
