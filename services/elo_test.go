package services

import (
	"testing"

	"photo-review-api/models"
)

func TestCalculateNewElo_Approved(t *testing.T) {
	cases := []struct {
		name       string
		confidence int
		wordCount  int
		want       int
	}{
		{"high confidence long comment", 90, 300, InitialEloRating + 9 + 5},
		{"bonus capped at five", 100, 1000, InitialEloRating + 10 + 5},
		{"minimal comment", 50, 50, InitialEloRating + 5 + 1},
		{"zero confidence", 0, 60, InitialEloRating + 0 + 1},
		{"confidence clamped above hundred", 250, 50, InitialEloRating + 10 + 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateNewElo(InitialEloRating, true, tc.confidence, tc.wordCount)
			if got != tc.want {
				t.Errorf("CalculateNewElo = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCalculateNewElo_Rejected(t *testing.T) {
	if got := CalculateNewElo(InitialEloRating, false, 100, 60); got != InitialEloRating-30 {
		t.Errorf("max confidence rejection: got %d, want %d", got, InitialEloRating-30)
	}
	if got := CalculateNewElo(InitialEloRating, false, 0, 60); got != InitialEloRating-10 {
		t.Errorf("zero confidence rejection: got %d, want %d", got, InitialEloRating-10)
	}
}

func TestCalculateNewElo_NoFloor(t *testing.T) {
	got := CalculateNewElo(5, false, 100, 60)
	if got != -25 {
		t.Errorf("rating should go negative: got %d, want -25", got)
	}
}

func TestQualityEloChange(t *testing.T) {
	cases := []struct {
		quality float64
		want    int
	}{
		{3.0, 0},
		{5.0, 30},
		{1.0, -30},
		{4.0, 15},
		{2.0, -15},
		{10.0 / 3.0, 5},
	}
	for _, tc := range cases {
		if got := QualityEloChange(tc.quality); got != tc.want {
			t.Errorf("QualityEloChange(%v) = %d, want %d", tc.quality, got, tc.want)
		}
	}
}

func TestOverallQuality(t *testing.T) {
	if got := OverallQuality(5, 5, 5); got != 5.0 {
		t.Errorf("OverallQuality(5,5,5) = %v, want 5", got)
	}
	if got := OverallQuality(1, 2, 3); got != 2.0 {
		t.Errorf("OverallQuality(1,2,3) = %v, want 2", got)
	}
}

func TestGetModerationDecision(t *testing.T) {
	cases := []struct {
		name     string
		analysis models.AIAnalysis
		want     string
	}{
		{
			"offensive above threshold",
			models.AIAnalysis{IsOffensive: true, IsRelevant: true, Confidence: 85},
			models.ModerationStatusRejected,
		},
		{
			"offensive below threshold",
			models.AIAnalysis{IsOffensive: true, IsRelevant: true, Confidence: 50},
			models.ModerationStatusApproved,
		},
		{
			"offensive at threshold",
			models.AIAnalysis{IsOffensive: true, IsRelevant: true, Confidence: 70},
			models.ModerationStatusRejected,
		},
		{
			"irrelevant above threshold",
			models.AIAnalysis{IsRelevant: false, Confidence: 90},
			models.ModerationStatusRejected,
		},
		{
			"irrelevant below threshold",
			models.AIAnalysis{IsRelevant: false, Confidence: 75},
			models.ModerationStatusApproved,
		},
		{
			"ai generated alone never rejects",
			models.AIAnalysis{IsAiGenerated: true, IsRelevant: true, Confidence: 99},
			models.ModerationStatusApproved,
		},
		{
			"clean review",
			models.AIAnalysis{IsRelevant: true, Confidence: 95},
			models.ModerationStatusApproved,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetModerationDecision(tc.analysis); got != tc.want {
				t.Errorf("GetModerationDecision = %q, want %q", got, tc.want)
			}
		})
	}
}
