package service

import (
	"math"
	"strings"

	"profilemax/internal/domain"
)

const (
	mockConfidentBase = "Software engineer by day, weekend adventurer by choice. I'll probably challenge you to try something new — and mean it. Looking for someone who keeps up."
	mockConfidentTail = "Let's skip the small talk."
	mockPlayful       = "Warning: conversations with me may cause unexpected laughter, spontaneous travel plans, and mild obsession with good coffee. Swipe right at your own risk. 😄"
	mockWarm          = "I believe the best moments happen when you're fully present — whether that's on a trail, at a dinner table, or deep in conversation at 2am. I'm looking for someone real. Let's actually meet."
	mockBioAnalysis   = "Good foundation, but could use more specificity and a stronger hook to stand out."
)

// mockBioRewrite es el payload fijo del endpoint de bio; solo depende de la cantidad de palabras.
func mockBioRewrite(bio string) domain.BioRewrite {
	wordCount := spaceFieldCount(bio)

	confident := mockConfidentBase
	if wordCount > 30 {
		confident += " " + mockConfidentTail
	}

	return domain.BioRewrite{
		Rewrites: domain.BioRewrites{
			Confident: strings.TrimSpace(confident),
			Playful:   mockPlayful,
			Warm:      mockWarm,
		},
		BioScore: math.Min(100, math.Max(30, 45+float64(wordCount)*0.8)),
		Analysis: mockBioAnalysis,
	}
}

// mockConversationAnalysis es el payload fijo del endpoint de mensajes.
func mockConversationAnalysis() domain.ConversationAnalysis {
	return domain.ConversationAnalysis{
		Tone:             "Friendly",
		ConfidenceRating: "Medium",
		InvestmentLevel:  "Slightly High",
		Vibe:             "Casual small talk",
		Improvements: []string{
			"Avoid answering questions with questions — lead the conversation more",
			"Add more personality and teasing to stand out from others",
			"Suggest a date sooner — don't over-invest in text chat",
		},
		Replies: []domain.ReplyOption{
			{
				Style: "Confident & Direct",
				Text:  "Honestly? Trails are overrated without good company. You free Thursday?",
			},
			{
				Style: "Playful & Light",
				Text:  "Careful, I'll have you hiking Half Dome before the end of the month 😂 What's your fitness level — be honest.",
			},
			{
				Style: "Intriguing",
				Text:  "There's this spot most people miss entirely. I'll show you sometime.",
			},
		},
	}
}
