package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/newscast/internal/cli"
	"codeberg.org/snonux/newscast/internal/logging"
	"codeberg.org/snonux/newscast/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command with the bot and model subcommands
	rootCmd := newRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand(flags *cli.Flags) *cobra.Command {
	rootCmd := cli.CreateRootCommand(flags)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, args)
	}
	rootCmd.AddCommand(
		newChatInfoCommand(),
		newSendMessageCommand(),
		newModelsCommand(),
	)
	return rootCmd
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(args)
	if err != nil {
		return err
	}
	logging.Init(cfg.LogLevel)

	out := cmd.OutOrStdout()
	proc, err := processor.NewProcessor(cfg, processor.WithOutput(out))
	if err != nil {
		return err
	}

	summary, runErr := proc.Run(cmd.Context())
	if summary != nil {
		fmt.Fprintln(out)
		summary.Render(out)
	}
	return runErr
}
