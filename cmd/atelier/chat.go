package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/atelier-agent/internal/app/conversation"
	"github.com/PabloGalante/atelier-agent/internal/config"
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the advisor in the terminal (in-memory session)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cfg.StorageBackend = config.StorageMemory
			cfg.LeadsBackend = config.LeadsMemory

			a, err := buildApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			start, err := a.conv.StartSession(ctx, conversation.StartSessionInput{Language: domain.Language(lang)})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "atelier: %s\n", start.Welcome)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
					continue
				case "exit", "quit":
					return nil
				}

				res, err := a.conv.ProcessTurn(ctx, start.State.SessionID, line)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "atelier [%s]: %s\n", res.Phase, res.Response)
			}
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Reply language: de or en (default: detect, German first)")
	return cmd
}
