package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"profilemax/internal/service"
)

func newMessagesCommand(a *app) *cobra.Command {
	var (
		conversation string
		file         string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Review a conversation and get reply suggestions",
		Long:  "Review a conversation pasted with --conversation, read from --file, or piped on stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readConversation(conversation, file, a.in)
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return errNoConversation
			}

			res, err := a.client().AnalyzeMessage(cmd.Context(), text)
			if err != nil {
				if errors.Is(err, service.ErrConversationRequired) {
					return errNoConversation
				}
				return fmt.Errorf("%w: %w", errAnalysisFailed, err)
			}

			if asJSON {
				var pretty any
				if err := json.Unmarshal(res.Raw, &pretty); err != nil {
					return fmt.Errorf("decode analysis: %w", err)
				}
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(pretty)
			}
			renderConversation(a.out, res.Value)
			return nil
		},
	}

	cmd.Flags().StringVar(&conversation, "conversation", "", "conversation text")
	cmd.Flags().StringVar(&file, "file", "", "read the conversation from a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	cmd.MarkFlagsMutuallyExclusive("conversation", "file")
	return cmd
}

func readConversation(conversation, file string, stdin io.Reader) (string, error) {
	switch {
	case conversation != "":
		return conversation, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read conversation file: %w", err)
		}
		return string(data), nil
	case stdin != nil && !isTerminal(stdin):
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", nil
}

// isTerminal reporta si r es una terminal interactiva, para no bloquear esperando stdin.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
