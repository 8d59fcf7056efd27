package main

import (
	"os"

	"github.com/alecthomas/kong"

	"habitserver/internal/logger"
)

var CLI struct {
	Config string `help:"Config file path." type:"path" default:"config/config.yaml"`

	Serve   ServeCmd   `cmd:"" help:"Run the HTTP server." default:"1"`
	Migrate MigrateCmd `cmd:"" help:"Apply pending database migrations."`
	Seed    SeedCmd    `cmd:"" help:"Load badges and challenges."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitserver"),
		kong.Description("Social habit tracker API"),
		kong.UsageOnError(),
	)

	app, err := newApp(CLI.Config)
	if err != nil {
		logger.Error("startup failed", "err", err)
		os.Exit(1)
	}

	if err := ctx.Run(app); err != nil {
		logger.Error("command failed", "cmd", ctx.Command(), "err", err)
		os.Exit(1)
	}
}
