// Command stctl calls the Streamtape API through the same services as the
// HTTP gateway and prints the result as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/andresuchdata/streamtape-gateway/internal/config"
	"github.com/andresuchdata/streamtape-gateway/internal/service"
	"github.com/andresuchdata/streamtape-gateway/internal/streamtape"
	"github.com/andresuchdata/streamtape-gateway/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type app struct {
	gateway  *streamtape.Client
	services *service.Services
	out      io.Writer
}

func (a *app) setup(c *cli.Context) error {
	if path := c.String("env-file"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Configure(c.String("log-level"), "console")

	gateway, err := streamtape.NewClient(cfg.Streamtape, nil)
	if err != nil {
		return err
	}
	a.gateway = gateway
	a.services = service.New(gateway)
	return nil
}

func (a *app) teardown(*cli.Context) error {
	if a.gateway != nil {
		a.gateway.Close()
	}
	return nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	a := &app{out: os.Stdout}

	cliApp := &cli.App{
		Name:  "stctl",
		Usage: "Manage a Streamtape account from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file before reading configuration",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before:   a.setup,
		After:    a.teardown,
		Commands: commands(a),
	}

	if err := cliApp.Run(os.Args); err != nil {
		if gwErr, ok := streamtape.AsError(err); ok {
			fmt.Fprintf(os.Stderr, "error (%d): %s\n", gwErr.StatusCode, gwErr.Detail)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
