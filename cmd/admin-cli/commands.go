package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	dpcli "github.com/database-playground/account-eraser/cli"
	"github.com/database-playground/account-eraser/internal/accountdata"
	"github.com/database-playground/account-eraser/internal/config"
	"github.com/database-playground/account-eraser/internal/deps"
	"github.com/urfave/cli/v3"
)

func newDeleteUserCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:        "delete-user",
		Usage:       "Delete all data stored under a user's record",
		Description: "Recursively deletes users/<uid> and everything below it. Re-run the command if it fails part way.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "uid",
				Usage:    "The uid of the user whose data should be deleted.",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Confirm the deletion. Nothing is deleted without it.",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			uid := c.String("uid")
			if !c.Bool("yes") {
				return fmt.Errorf("refusing to delete %q without --yes", accountdata.UserRecordPath(uid))
			}

			store, closeStore, err := deps.NewStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			clictx := dpcli.NewContext(accountdata.NewDeleter(store, nil))

			fmt.Printf("Deleting %q…\n", accountdata.UserRecordPath(uid))
			if err := clictx.DeleteUser(ctx, uid); err != nil {
				return err
			}

			fmt.Println("✅ User data deleted!")
			return nil
		},
	}
}

func newMintTokenCommand(cfg config.AuthConfig) *cli.Command {
	return &cli.Command{
		Name:  "mint-token",
		Usage: "Mint a development ID token accepted by the hmac verifier",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "uid",
				Usage:    "The uid the token is issued for.",
				Required: true,
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "How long the token stays valid.",
				Value: time.Hour,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if cfg.Verifier != config.VerifierHMAC {
				return errors.New("mint-token requires AUTH_VERIFIER=hmac")
			}

			token, err := dpcli.MintToken(cfg.HMACSecret, c.String("uid"), c.Duration("ttl"))
			if err != nil {
				return err
			}

			fmt.Println(token)
			return nil
		},
	}
}

func newRootCommand(subcommands ...*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     "admin-cli",
		Usage:    "A CLI tool for operating the account eraser.",
		Commands: subcommands,
	}
}
