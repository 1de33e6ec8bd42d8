package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/doeshing/aiagent-go/internal/infrastructure/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	opts := cli.ParseGlobalFlags(os.Args[1:], cli.Options{Verbose: isVerbose()})

	root, container, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := container.Close(closeCtx); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("AIAGENT_DEBUG"), "1") || strings.EqualFold(os.Getenv("AIAGENT_DEBUG"), "true")
}
