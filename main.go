package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"learnhub_client/internal/app"
	"learnhub_client/internal/config"

	"github.com/spf13/pflag"
)

func main() {
	// 命令行参数, 命令自身的参数原样交给 controller
	configDir := pflag.StringP("config", "c", ".", "目录, 其中的 config.yaml 会被加载")
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application.Start(ctx)

	args := pflag.Args()
	if len(args) == 0 {
		args = []string{"help"}
	}

	if args[0] == "shell" {
		if err := application.RunShell(ctx, os.Stdin, os.Stdout); err != nil {
			log.Printf("shell: %v", err)
		}
		return
	}
	application.Execute(ctx, args[0], args[1:], os.Stdout)
}
