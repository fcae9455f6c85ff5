package main

import (
	"log"

	"github.com/Keoroanthony/go-crm/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
