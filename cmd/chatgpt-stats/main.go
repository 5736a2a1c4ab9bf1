package main

import "github.com/jasperwreed/chatgpt-stats/internal/cli"

func main() {
	cli.Execute()
}
