package main

import "github.com/llehouerou/aurex/internal/cli"

func main() {
	cli.Execute()
}
