package main

import "github.com/MaestroMetty/confesercenti-vallo-app/internal/cli"

func main() {
	cli.Execute()
}
