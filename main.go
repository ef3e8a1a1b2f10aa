package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/Jan-Kur/ChatCLI/cmd"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Couldn't load .env: %v", err)
	}

	cmd.Execute()
}
