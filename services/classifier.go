package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"photo-review-api/config"
	"photo-review-api/models"
)

// Classifier analyzes review text and returns a structured verdict. May fail
// or be unconfigured; callers treat any failure as approve.
type Classifier interface {
	Analyze(ctx context.Context, comment string) (models.AIAnalysis, error)
}

// GeminiClassifier moderates review comments through the Gemini REST API.
type GeminiClassifier struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiClassifier builds a classifier from the environment. Returns nil if
// GEMINI_API_KEY is unset; the pipeline then runs with moderation disabled.
func NewGeminiClassifier() *GeminiClassifier {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil
	}

	baseURL := os.Getenv("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	timeoutSec := 30
	if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &GeminiClassifier{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze sends the moderation prompt and parses the JSON verdict.
func (c *GeminiClassifier) Analyze(ctx context.Context, comment string) (models.AIAnalysis, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: config.BuildModerationPrompt(comment)}}},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return models.AIAnalysis{}, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return models.AIAnalysis{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.AIAnalysis{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.AIAnalysis{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return models.AIAnalysis{}, fmt.Errorf("gemini http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.AIAnalysis{}, err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return models.AIAnalysis{}, fmt.Errorf("gemini returned no candidates")
	}

	return parseVerdict(parsed.Candidates[0].Content.Parts[0].Text)
}

// parseVerdict decodes the classifier's JSON verdict, tolerating markdown code
// fences around the payload.
func parseVerdict(text string) (models.AIAnalysis, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var verdict struct {
		IsOffensive   bool    `json:"isOffensive"`
		IsAiGenerated bool    `json:"isAiGenerated"`
		IsRelevant    bool    `json:"isRelevant"`
		Confidence    float64 `json:"confidence"`
		Reasoning     string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(cleaned), &verdict); err != nil {
		return models.AIAnalysis{}, fmt.Errorf("unparseable verdict %q: %w", cleaned, err)
	}

	return models.AIAnalysis{
		IsOffensive:   verdict.IsOffensive,
		IsAiGenerated: verdict.IsAiGenerated,
		IsRelevant:    verdict.IsRelevant,
		Confidence:    int(verdict.Confidence),
		Reasoning:     verdict.Reasoning,
	}, nil
}
