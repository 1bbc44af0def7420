package main

import (
	"wmoracle/internal/democtl"
)

func main() {
	democtl.Execute()
}
