package main

import (
	"wayfarer/cmd"
	"wayfarer/internal/logging"
)

func main() {
	logging.Setup()
	cmd.Execute()
}
