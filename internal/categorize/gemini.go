package categorize

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClassifier is the generative tier backed by Gemini. The prompt
// includes the closed category list and instructs the model to answer
// with exactly one name from it; the resolver enforces the constraint
// on whatever comes back.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

// NewGeminiClassifier creates a classifier using the given model. The
// client reads GEMINI_API_KEY from the environment.
func NewGeminiClassifier(ctx context.Context, model string) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiClassifier: create genai client: %w", err)
	}
	return &GeminiClassifier{client: client, model: model}, nil
}

// Classify asks the model for the spending category of one merchant.
func (g *GeminiClassifier) Classify(ctx context.Context, merchantName string, categories []string) (string, error) {
	prompt := buildClassifyPrompt(merchantName, categories)

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Classify: generate content: %w", err)
	}

	name := strings.TrimSpace(resp.Text())
	if name == "" {
		return "", fmt.Errorf("Classify: empty response from model for merchant %q", merchantName)
	}
	return name, nil
}

// buildClassifyPrompt constrains the model to the closed category list.
func buildClassifyPrompt(merchantName string, categories []string) string {
	var b strings.Builder
	b.WriteString("You classify credit card merchants into spending categories.\n\n")
	b.WriteString("Allowed categories (answer with EXACTLY one of these, nothing else):\n")
	for _, c := range categories {
		b.WriteString("- " + c + "\n")
	}
	b.WriteString("\nIf none fits, answer \"" + Fallback + "\".\n")
	b.WriteString("Do not explain. Do not add punctuation.\n\n")
	b.WriteString("Merchant: " + merchantName + "\n")
	b.WriteString("Category:")
	return b.String()
}
