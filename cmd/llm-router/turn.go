package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MarcusGale/LLM-Router/handlers"
	"github.com/MarcusGale/LLM-Router/services/chat"
	"github.com/MarcusGale/LLM-Router/services/providers"
	"github.com/spf13/cobra"
)

// conversationFromArgs turns CLI input into a single-turn conversation,
// optionally preceded by a system message
func conversationFromArgs(system string, args []string) []providers.Message {
	var conv []providers.Message
	if system != "" {
		conv = append(conv, providers.Message{Role: providers.RoleSystem, Content: system})
	}
	return append(conv, providers.Message{Role: providers.RoleUser, Content: strings.Join(args, " ")})
}

func newRouteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <message>",
		Short: "Classify a message and print the routing decision as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer deps.Close(ctx)

			decision, err := deps.Chat.Route(ctx, conversationFromArgs("", args))
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(handlers.RouteResponse{
				Model:       decision.ModelID.String(),
				Specs:       decision.Spec,
				Explanation: decision.Explanation,
				Fallback:    decision.Fallback,
			}, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func newChatCmd() *cobra.Command {
	var (
		system string
		html   bool
	)

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Run a full turn and print the composed answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer deps.Close(ctx)

			result, err := deps.Chat.ProcessTurn(ctx, &chat.TurnRequest{
				Messages: conversationFromArgs(system, args),
			})
			if err != nil {
				return err
			}

			body := result.Presentation.Markdown
			if html {
				body = result.Presentation.HTML
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
			return err
		},
	}

	cmd.Flags().StringVarP(&system, "system", "s", "", "Prepend a system message to the conversation")
	cmd.Flags().BoolVar(&html, "html", false, "Print the HTML rendition instead of Markdown")
	return cmd
}
