package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apimgr/cwe/src/client/cmd"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := InitCLI(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer env.Close()

	err = cmd.Execute(ctx, os.Args[1:], cmd.Options{
		Out:       os.Stdout,
		Err:       os.Stderr,
		Logger:    env.Logger,
		RequestID: env.RequestID,
	})
	if err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		env.Logger.Debug("command failed", "error", err, "exit_code", cmd.ExitCode(err))
	}
	return cmd.ExitCode(err)
}
