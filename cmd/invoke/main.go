package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hillalee/s3-lister/internal/config"
	"github.com/hillalee/s3-lister/internal/invoker"
	"github.com/hillalee/s3-lister/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger.InitFromEnv()
	logger.SetFormat(logger.FormatConsole)

	cfg, output, err := config.FromInvokeFlags(config.Load(), os.Args[0], os.Args[1:])
	if err == flag.ErrHelp {
		fmt.Println(output)
		os.Exit(2)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if output != "" {
			fmt.Fprint(os.Stderr, output)
		}
		os.Exit(1)
	}

	if cfg.IsDebug {
		logger.SetLevelFromString("debug")
	}

	if err := run(context.Background(), cfg); err != nil {
		logger.Errorf("[Invoke] %v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(ctx context.Context, cfg *config.InvokeConfig) error {
	client, err := invoker.NewClient(ctx, cfg.Region, cfg.Endpoint)
	if err != nil {
		return err
	}

	res, err := invoker.New(client).Invoke(ctx, cfg.FunctionName, cfg.Payload)
	var fnErr *invoker.FunctionError
	if err != nil && !errors.As(err, &fnErr) {
		return err
	}

	if res.LogTail != "" {
		logger.Debugf("[Invoke] Log tail:\n%s", res.LogTail)
	}
	logger.Infof("[Invoke] %s returned status %d", cfg.FunctionName, res.StatusCode)
	fmt.Println(string(res.Payload))

	return err
}
