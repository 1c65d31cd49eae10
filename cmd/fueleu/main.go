package main

import (
	"github.com/andrescamacho/fueleu-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
