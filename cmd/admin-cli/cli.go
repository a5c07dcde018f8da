package main

import (
	"context"
	"log"
	"os"

	"github.com/database-playground/account-eraser/internal/deps"

	_ "github.com/database-playground/account-eraser/internal/deps/logger"
)

func main() {
	cfg, err := deps.Config()
	if err != nil {
		log.Fatal(err)
	}

	deleteUserCommand := newDeleteUserCommand(cfg)
	mintTokenCommand := newMintTokenCommand(cfg.Auth)

	rootCommand := newRootCommand(deleteUserCommand, mintTokenCommand)

	if err := rootCommand.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

