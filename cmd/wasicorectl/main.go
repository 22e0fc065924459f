// Command wasicorectl is a small host-side harness for exercising a
// wasicore.Sandbox directly from the command line: list its preopens, dump
// its descriptor table, or run a scripted sequence of path/fd operations
// against a real directory. It is not a Wasm runtime — it calls the
// wasicore.Sandbox methods directly, without going through the wasicore/abi
// dispatcher or guest memory.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wasicore/wasicore/cmd/wasicorectl/internal/script"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cmd := &cli.Command{
		Name:  "wasicorectl",
		Usage: "inspect and exercise a wasicore sandbox from the command line",
		Commands: []*cli.Command{
			preopensCommand(logger),
			tableCommand(logger),
			runCommand(logger),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error("wasicorectl failed", "error", err)
		os.Exit(1)
	}
}

func preopensCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "preopens",
		Usage:     "list configured preopen directories and their mapped paths",
		ArgsUsage: "dir[:mapped] [dir[:mapped] ...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sb, err := script.NewSandboxFromArgs(cmd.Args().Slice(), nil)
			if err != nil {
				return err
			}
			defer sb.Close()
			for _, p := range sb.ListPreopens() {
				fmt.Printf("fd=%d mapped=%s real=%s\n", p.Fd, p.MappedPath, p.RealPath)
			}
			return nil
		},
	}
}

func tableCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "table",
		Usage:     "dump the descriptor table after opening the given preopens",
		ArgsUsage: "dir[:mapped] [dir[:mapped] ...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sb, err := script.NewSandboxFromArgs(cmd.Args().Slice(), nil)
			if err != nil {
				return err
			}
			defer sb.Close()
			sb.DumpTable(os.Stdout)
			return nil
		},
	}
}

func runCommand(logger *slog.Logger) *cli.Command {
	var scriptPath string
	return &cli.Command{
		Name:      "run",
		Usage:     "run a scripted sequence of syscalls against a preopened directory",
		ArgsUsage: "dir[:mapped] [dir[:mapped] ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "script",
				Aliases:     []string{"s"},
				Usage:       "path to a newline-delimited operation script (see wasicorectl/internal/script)",
				Required:    true,
				Destination: &scriptPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sb, err := script.NewSandboxFromArgs(cmd.Args().Slice(), nil)
			if err != nil {
				return err
			}
			defer sb.Close()

			ops, err := script.Load(scriptPath)
			if err != nil {
				return err
			}
			results, err := script.Run(sb, ops)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Println(r)
			}
			logger.Info("script complete", "ops", len(ops))
			return nil
		},
	}
}
