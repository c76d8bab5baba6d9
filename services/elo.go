package services

import (
	"math"
)

// InitialEloRating is assigned to every user at signup.
const InitialEloRating = 1000

// CalculateNewElo computes a reviewer's rating after moderation of one review.
// Approved reviews gain with classifier confidence plus a capped substance
// bonus for longer comments; rejected reviews lose proportionally to the
// confidence of the rejection. Ratings have no floor: repeated rejections can
// drive a rating below zero.
func CalculateNewElo(currentElo int, reviewApproved bool, aiConfidence int, wordCount int) int {
	if aiConfidence < 0 {
		aiConfidence = 0
	} else if aiConfidence > 100 {
		aiConfidence = 100
	}

	if reviewApproved {
		gain := int(math.Round(float64(aiConfidence) / 10.0)) // 0..10
		bonus := wordCount / 50
		if bonus > 5 {
			bonus = 5
		}
		return currentElo + gain + bonus
	}

	// 10..30 depending on how certain the rejection was
	loss := 10 + int(math.Round(float64(aiConfidence)/5.0))
	return currentElo - loss
}

// OverallQuality is the mean of the three 1-5 rating dimensions.
func OverallQuality(specificity, constructiveness, relevance int) float64 {
	return float64(specificity+constructiveness+relevance) / 3.0
}

// QualityEloChange maps an overall quality score to a rating delta. A neutral
// 3.0 maps to zero; the extremes map to -30 and +30.
func QualityEloChange(overallQuality float64) int {
	return int(math.Round((overallQuality - 3.0) * 15.0))
}
