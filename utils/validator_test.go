package utils

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.org"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "not-an-email", "user@", "@example.com", "user@example"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidateID(t *testing.T) {
	id, err := ValidateID(" 42 ")
	if err != nil || id != 42 {
		t.Errorf("ValidateID(\" 42 \") = %d, %v", id, err)
	}

	for _, raw := range []string{"", "abc", "0", "-5", "1.5"} {
		if _, err := ValidateID(raw); err == nil {
			t.Errorf("ValidateID(%q) should fail", raw)
		}
	}
}

func TestValidateReviewScore(t *testing.T) {
	for _, score := range []int{0, 50, 100} {
		if ok, _ := ValidateReviewScore(score); !ok {
			t.Errorf("ValidateReviewScore(%d) = false, want true", score)
		}
	}
	for _, score := range []int{-1, 101} {
		if ok, _ := ValidateReviewScore(score); ok {
			t.Errorf("ValidateReviewScore(%d) = true, want false", score)
		}
	}
}

func TestWordCount(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"two  words", 2},
		{"line\nbreaks\tand tabs", 4},
	}
	for _, tc := range cases {
		if got := WordCount(tc.text); got != tc.want {
			t.Errorf("WordCount(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestValidateReviewComment(t *testing.T) {
	if _, _, err := ValidateReviewComment("   "); err == nil {
		t.Error("blank comment should fail")
	}

	short := strings.Repeat("word ", MinCommentWords-1)
	if _, words, err := ValidateReviewComment(short); err == nil {
		t.Errorf("%d-word comment should fail", words)
	}

	long := strings.Repeat("word ", MinCommentWords)
	sanitized, words, err := ValidateReviewComment("  " + long + "  ")
	if err != nil {
		t.Fatalf("ValidateReviewComment: %v", err)
	}
	if words != MinCommentWords {
		t.Errorf("word count %d, want %d", words, MinCommentWords)
	}
	if sanitized != strings.TrimSpace(long) {
		t.Errorf("comment not trimmed: %q", sanitized)
	}
}

func TestValidateDimensionScore(t *testing.T) {
	for _, score := range []int{1, 3, 5} {
		if !ValidateDimensionScore(score) {
			t.Errorf("ValidateDimensionScore(%d) = false, want true", score)
		}
	}
	for _, score := range []int{0, 6, -1} {
		if ValidateDimensionScore(score) {
			t.Errorf("ValidateDimensionScore(%d) = true, want false", score)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeInput = %q", got)
	}
}
