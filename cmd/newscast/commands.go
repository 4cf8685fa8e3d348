package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/newscast/internal/cli"
	"codeberg.org/snonux/newscast/internal/logging"
	"codeberg.org/snonux/newscast/internal/models"
	"codeberg.org/snonux/newscast/internal/telegram"
)

func newBot() (*telegram.Bot, error) {
	logging.Init(cli.LogLevel())
	return telegram.NewBot(cli.TelegramConfig())
}

// channelArg returns args[i] when given, otherwise the configured channel
func channelArg(args []string, i int) string {
	if len(args) > i && strings.TrimSpace(args[i]) != "" {
		return strings.TrimSpace(args[i])
	}
	return cli.ChannelID()
}

func newChatInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat-info [channel-id]",
		Short: "Show the Telegram chat the bot publishes to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := newBot()
			if err != nil {
				return err
			}

			resp, err := bot.GetChat(cmd.Context(), channelArg(args, 0))
			if err != nil {
				return err
			}
			chat, err := resp.Chat()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:       %d\n", chat.ID)
			fmt.Fprintf(out, "Type:     %s\n", chat.Type)
			fmt.Fprintf(out, "Title:    %s\n", chat.Title)
			if chat.Username != "" {
				fmt.Fprintf(out, "Username: @%s\n", chat.Username)
			}
			if chat.Description != "" {
				fmt.Fprintf(out, "About:    %s\n", chat.Description)
			}
			return nil
		},
	}
}

func newSendMessageCommand() *cobra.Command {
	var parseMode string

	cmd := &cobra.Command{
		Use:   "send-message <text> [channel-id]",
		Short: "Send a text message to the channel",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := newBot()
			if err != nil {
				return err
			}

			resp, err := bot.SendMessage(cmd.Context(), channelArg(args, 1), args[0], parseMode)
			if err != nil {
				return err
			}
			if err := resp.Err(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent message %d\n", resp.MessageID())
			return nil
		},
	}
	cmd.Flags().StringVar(&parseMode, "parse-mode", "", "Telegram parse mode: HTML, Markdown or MarkdownV2")
	return cmd
}

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List OpenAI models usable for scripts and narration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(cli.LogLevel())
			lister := models.NewLister(cli.GetOpenAIKey(), cli.OpenAIBaseURL())
			return lister.ListAvailableModels(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
