package main

import (
	"context"
	"log"
	"os"

	"github.com/viant/reactor/cmd"
)

var Version = "dev"

func main() {
	if err := cmd.Run(context.Background(), Version, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}
