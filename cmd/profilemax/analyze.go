package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"profilemax/internal/domain"
	"profilemax/internal/service"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var (
		bio      string
		bioFile  string
		prompts  string
		platform string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [PHOTO...]",
		Short: "Analyze photos and bio and save the score to the local history",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if bioFile != "" {
				data, err := os.ReadFile(bioFile)
				if err != nil {
					return fmt.Errorf("read bio file: %w", err)
				}
				bio = string(data)
			}

			// Solo importa el nombre de archivo de cada foto.
			photos := make([]string, 0, len(args))
			for _, p := range args {
				photos = append(photos, filepath.Base(p))
			}
			if len(photos) > domain.MaxPhotos {
				fmt.Fprintln(a.out, yellow(fmt.Sprintf("Only the first %d photos are analyzed.", domain.MaxPhotos)))
			}

			history, err := a.history()
			if err != nil {
				return err
			}

			analyzer := service.NewProfileAnalyzer(a.client(), nil, a.logger)
			analysis, err := analyzer.Analyze(cmd.Context(), service.ProfileInput{
				Platform: platform,
				Bio:      bio,
				Prompts:  prompts,
				Photos:   photos,
			})
			if err != nil {
				if errors.Is(err, service.ErrEmptyProfile) {
					return errEmptyProfile
				}
				return fmt.Errorf("%w: %w", errAnalysisFailed, err)
			}

			if _, err := history.Append(cmd.Context(), analysis.HistoryEntry()); err != nil {
				a.logger.Warn("history not saved", zap.Error(err))
				fmt.Fprintln(a.out, yellow("Could not save this analysis to the history: "+err.Error()))
			}

			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(analysis)
			}
			renderAnalysis(a.out, analysis)
			return nil
		},
	}

	cmd.Flags().StringVar(&bio, "bio", "", "bio text")
	cmd.Flags().StringVar(&bioFile, "bio-file", "", "read the bio from a file")
	cmd.Flags().StringVar(&prompts, "prompts", "", "profile prompts and answers")
	cmd.Flags().StringVar(&platform, "platform", domain.DefaultPlatform, "dating platform (Tinder, Hinge, Bumble, OkCupid, Other)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	cmd.MarkFlagsMutuallyExclusive("bio", "bio-file")
	return cmd
}
