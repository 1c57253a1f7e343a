package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements the adapter.CategorySuggester interface using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// SuggestCategory asks the model to classify an expense description.
func (s *GeminiService) SuggestCategory(ctx context.Context, request *adapter.CategorySuggestionRequest) (*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildSuggestionPrompt(request)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	return parseSuggestion(text)
}

func buildSuggestionPrompt(request *adapter.CategorySuggestionRequest) string {
	var sb strings.Builder

	sb.WriteString(`You classify personal expenses into exactly one category.

ALLOWED CATEGORIES (use the key exactly as written):
`)
	for _, info := range request.Categories {
		fmt.Fprintf(&sb, "- %s (%s)\n", info.Category, info.Name)
	}

	fmt.Fprintf(&sb, "\nEXPENSE:\n- Description: %q\n", request.Description)
	if request.Amount != "" {
		fmt.Fprintf(&sb, "- Amount: %s\n", request.Amount)
	}

	sb.WriteString(`
Respond with a single JSON object:
{
  "category": "one of the allowed keys",
  "confidence": 0.0-1.0,
  "reasoning": "one short sentence"
}

If nothing fits, use "other". Return only the JSON object, without additional text.
`)

	return sb.String()
}

// geminiSuggestion represents the raw response from Gemini.
type geminiSuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

// parseSuggestion decodes the model output. The category is passed through
// untouched; validating it against the closed set is the caller's job.
func parseSuggestion(text string) (*adapter.CategorySuggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw geminiSuggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &adapter.CategorySuggestion{
		Category:   strings.ToLower(strings.TrimSpace(raw.Category)),
		Confidence: confidence,
		Reasoning:  raw.Reasoning,
	}, nil
}

var _ adapter.CategorySuggester = (*GeminiService)(nil)
