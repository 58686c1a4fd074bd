package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/stylus-nft/minter/internal/blockchain"
	"github.com/stylus-nft/minter/internal/config"
	"github.com/stylus-nft/minter/internal/minter"
	"github.com/stylus-nft/minter/pkg/logger"
)

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "rpc-url", Aliases: []string{"r"}, Usage: "JSON-RPC endpoint", Value: config.DefaultRPCURL},
		&cli.DurationFlag{Name: "timeout", Aliases: []string{"t"}, Usage: "Abort the run after this long (0 waits forever)"},
		&cli.BoolFlag{Name: "development", Aliases: []string{"D"}, Usage: "Development mode (console logs, debug level)"},
	}
}

func main() {
	app := &cli.App{
		Name:        "minter",
		Usage:       "Mints token 0 of an ERC-721 contract to the signer and reports its owner before and after",
		Description: "Reads PRIVATE_KEY and CONTRACT_ADDRESS from the environment (or a .env file).",
		Flags:       flags(),
		Action: func(c *cli.Context) error {
			return run(c, mint)
		},
		Commands: []*cli.Command{
			{
				Name:  "info",
				Usage: "Print name, symbol, token URI and the signer's balance without sending a transaction",
				Flags: flags(),
				Action: func(c *cli.Context) error {
					return run(c, inspect)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func mint(c *cli.Context, m *minter.Minter) error {
	return m.Run(c.Context)
}

func inspect(c *cli.Context, m *minter.Minter) error {
	_, err := m.Inspect(c.Context)
	return err
}

func run(c *cli.Context, action func(*cli.Context, *minter.Minter) error) error {
	// Load configuration from environment variables
	cfg := config.LoadConfig()

	// Override with flags if set
	if c.IsSet("rpc-url") {
		cfg.RPCURL = c.String("rpc-url")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("development") {
		cfg.Development = c.Bool("development")
	}

	log, err := logger.NewLogger(cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	m := minter.NewMinter(cfg, blockchain.NewDialer(log), os.Stdout, log)
	if err := action(c, m); err != nil {
		log.Error("Run failed", "error", err)
		return err
	}
	return nil
}
