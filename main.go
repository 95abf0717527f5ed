package main

import (
	"github.com/Nrich-sunny/honorcrawler/cmd"
)

func main() {
	cmd.Execute()
}
