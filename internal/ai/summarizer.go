package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultRecoveryTips is returned whenever the generative service is not
// configured or fails.
var DefaultRecoveryTips = []string{
	"Stay hydrated - drink plenty of water",
	"Avoid heavy lifting for 24 hours",
	"Rest well and listen to your body",
}

// Summarizer turns free-text appointment notes into a clinician-facing
// summary. The Gemini credential is optional: without one every operation
// returns a deterministic fallback and no external call is made. Failures
// never surface to the caller.
type Summarizer struct {
	client  *genai.Client
	modelID string
}

// NewSummarizer builds the adapter. An empty apiKey yields a fallback-only
// summarizer rather than an error.
func NewSummarizer(ctx context.Context, apiKey, modelID string) (*Summarizer, error) {
	if modelID == "" {
		modelID = "gemini-2.5-flash"
	}
	if strings.TrimSpace(apiKey) == "" {
		return &Summarizer{modelID: modelID}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("ai: create gemini client: %w", err)
	}
	return &Summarizer{client: client, modelID: modelID}, nil
}

// Configured reports whether a generative credential is in use.
func (s *Summarizer) Configured() bool {
	return s.client != nil
}

// Close releases the underlying API client, if any.
func (s *Summarizer) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Summarize produces a short professional summary of the notes for the given
// service type.
func (s *Summarizer) Summarize(ctx context.Context, notes, serviceType string) string {
	if s.client == nil {
		return fallbackSummary(notes, serviceType)
	}

	model := s.client.GenerativeModel(s.modelID)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)

	prompt := fmt.Sprintf(`Summarize the following client notes for a %s massage session.
Extract key focus areas and any health concerns.
Keep it professional and concise for a therapist.

Notes: %s`, serviceType, notes)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("ai: summary failed: %v", err)
		return "Client notes: " + notes
	}

	text := responseText(resp)
	if text == "" {
		return "No summary generated."
	}
	return text
}

// RecoveryTips asks for exactly three short post-care tips as a JSON array of
// strings, falling back to the fixed defaults.
func (s *Summarizer) RecoveryTips(ctx context.Context, serviceType string) []string {
	if s.client == nil {
		return DefaultRecoveryTips
	}

	model := s.client.GenerativeModel(s.modelID)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}

	prompt := fmt.Sprintf("Provide 3 brief post-care recovery tips for a client who just had a %s session.", serviceType)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("ai: recovery tips failed, using defaults: %v", err)
		return DefaultRecoveryTips
	}

	var tips []string
	if err := json.Unmarshal([]byte(responseText(resp)), &tips); err != nil || len(tips) == 0 {
		return DefaultRecoveryTips
	}
	return tips
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

func fallbackSummary(notes, serviceType string) string {
	runes := []rune(notes)
	truncated := notes
	suffix := ""
	if len(runes) > 200 {
		truncated = string(runes[:200])
		suffix = "..."
	}
	return fmt.Sprintf("Client notes for %s session: %s%s", serviceType, truncated, suffix)
}
