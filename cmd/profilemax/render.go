package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"profilemax/internal/domain"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	blue   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// scoreColor sigue los cortes del score: 75+ verde, 55+ azul, el resto amarillo.
func scoreColor(score int) func(a ...interface{}) string {
	switch {
	case score >= 75:
		return green
	case score >= 55:
		return blue
	default:
		return yellow
	}
}

func recommendationColor(rec string) func(a ...interface{}) string {
	switch rec {
	case domain.RecommendationPrimary:
		return green
	case domain.RecommendationRemove:
		return red
	default:
		return blue
	}
}

func renderAnalysis(w io.Writer, a domain.ProfileAnalysis) {
	s := a.Score
	paint := scoreColor(s.Overall)

	fmt.Fprintf(w, "%s %s\n", bold("Profile score:"), paint(fmt.Sprintf("%d/100", s.Overall)))
	fmt.Fprintf(w, "%s %s\n", gray("Platform:"), a.Platform)
	fmt.Fprintf(w, "%s %s\n\n", gray("Percentile:"), s.Percentile)
	fmt.Fprintf(w, "  Photo Strength  %3d  %s\n", s.PhotoStrength, gray("(50%)"))
	fmt.Fprintf(w, "  Bio Quality     %3d  %s\n", s.BioQuality, gray("(30%)"))
	fmt.Fprintf(w, "  Completeness    %3d  %s\n", s.Completeness, gray("(20%)"))

	if len(s.Suggestions) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("Top fixes"))
		for _, sug := range s.Suggestions {
			fmt.Fprintf(w, "  - %s\n", sug)
		}
	}

	if len(a.PhotoResults) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("Photos"))
		for _, p := range a.PhotoResults {
			fmt.Fprintf(w, "  #%d %s  %.1f  %s\n", p.Index+1, p.Name, p.Overall, recommendationColor(p.Recommendation)(p.Recommendation))
			fmt.Fprintf(w, "     %s\n", gray(fmt.Sprintf("lighting %d · clarity %d · expression %d · style %d",
				p.Scores.Lighting, p.Scores.Clarity, p.Scores.Expression, p.Scores.Style)))
			for _, tag := range p.Tags {
				fmt.Fprintf(w, "     [%s]\n", tag)
			}
			for _, sug := range p.Suggestions {
				fmt.Fprintf(w, "     - %s\n", sug)
			}
		}
	}

	if len(a.BioResults) > 0 && string(a.BioResults) != "null" {
		var bio domain.BioRewrite
		if err := json.Unmarshal(a.BioResults, &bio); err != nil || bio.Rewrites == (domain.BioRewrites{}) {
			fmt.Fprintf(w, "\n%s\n  %s\n", bold("Bio"), string(a.BioResults))
			return
		}
		fmt.Fprintf(w, "\n%s %s\n", bold("Bio score:"), scoreColor(int(bio.BioScore))(fmt.Sprintf("%g", bio.BioScore)))
		if bio.Analysis != "" {
			fmt.Fprintln(w, indent(bio.Analysis, "  "))
		}
		for _, r := range []struct{ label, text string }{
			{"Confident", bio.Rewrites.Confident},
			{"Playful", bio.Rewrites.Playful},
			{"Warm", bio.Rewrites.Warm},
		} {
			if r.text == "" {
				continue
			}
			fmt.Fprintf(w, "\n  %s\n%s\n", bold(r.label), indent(r.text, "  "))
		}
	}
}

func renderConversation(w io.Writer, c domain.ConversationAnalysis) {
	fmt.Fprintf(w, "%s %s\n", gray("Tone:"), c.Tone)
	fmt.Fprintf(w, "%s %s\n", gray("Confidence:"), c.ConfidenceRating)
	fmt.Fprintf(w, "%s %s\n", gray("Investment:"), c.InvestmentLevel)
	fmt.Fprintf(w, "%s %s\n", gray("Vibe:"), c.Vibe)

	if len(c.Improvements) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("What to improve"))
		for _, imp := range c.Improvements {
			fmt.Fprintf(w, "  - %s\n", imp)
		}
	}
	if len(c.Replies) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("Suggested replies"))
		for _, r := range c.Replies {
			fmt.Fprintf(w, "  %s\n  %s\n\n", blue(r.Style), r.Text)
		}
	}
}

func renderHistory(w io.Writer, entries []domain.HistoryEntry, stats domain.HistoryStats) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No analyses yet. Run `profilemax analyze` to start tracking improvements over time.")
		return
	}

	fmt.Fprintf(w, "%s %s   %s %s   %s %s\n",
		gray("Latest"), scoreColor(*stats.Latest)(*stats.Latest),
		gray("Best"), scoreColor(*stats.Best)(*stats.Best),
		gray("Average"), scoreColor(*stats.Average)(*stats.Average),
	)

	if stats.Improvement != nil {
		fmt.Fprintln(w, improvementLine(*stats.Improvement))
		fmt.Fprintln(w, gray(fmt.Sprintf("Based on %d analysis %s", stats.Sessions, plural(stats.Sessions, "session"))))
	}

	fmt.Fprintln(w)
	for i, e := range entries {
		when := time.UnixMilli(e.Timestamp).Local().Format("Jan 2, 03:04 PM")
		line := fmt.Sprintf("  %s  %-8s %d %s · %d char bio  %s",
			scoreColor(e.Score)(fmt.Sprintf("%3d", e.Score)),
			e.Platform,
			e.PhotoCount, plural(e.PhotoCount, "photo"),
			e.BioLength,
			gray(when),
		)
		if i == 0 {
			line += " " + blue("Latest")
		}
		fmt.Fprintln(w, line)
	}
}

func improvementLine(delta int) string {
	switch {
	case delta > 0:
		return green(fmt.Sprintf("+%d point improvement from first analysis", delta))
	case delta < 0:
		return red(fmt.Sprintf("%d points since first analysis", delta))
	default:
		return "No change yet. Keep optimizing!"
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n"+prefix)
}
