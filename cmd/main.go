package main

import (
	"log"

	"armor-vision/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("armor-vision: %v", err)
	}
}
