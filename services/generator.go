package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// PodcastContent is the structured payload the generative model must return.
type PodcastContent struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
	Summary  string   `json:"summary"`
}

// TextGenerator produces podcast content from a user prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (*PodcastContent, error)
}

const systemPrompt = `You are a podcast content generator. Given a user request, generate comprehensive podcast content, create an engaging title, and extract relevant keywords. Return your response in JSON format with four fields: "title", "content", "keywords", and "summary".

Requirements:
- Generate an engaging, descriptive title that captures the essence of the content
- Generate engaging, conversational podcast content that sounds natural when spoken
- Extract 4-6 relevant keywords from the input that capture the main topics and concepts
- Generate a concise summary of the content that captures the main points and insights
- Use a conversational tone with natural transitions
- NO opening greetings or closing remarks - dive straight into content
- IMPORTANT: Return response as valid JSON only
- IMPORTANT: Do NOT include any markdown formatting such as triple backticks or code blocks in your response.`

// GeminiGenerator implements TextGenerator on top of the Gemini API.
type GeminiGenerator struct {
	APIKey string
	Model  string // defaults to gemini-2.0-flash
}

func NewGeminiGenerator(apiKey string) *GeminiGenerator {
	return &GeminiGenerator{APIKey: apiKey, Model: "gemini-2.0-flash"}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (*PodcastContent, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return nil, fmt.Errorf("cannot create Gemini client: %w", err)
	}
	defer client.Close()

	model := g.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	resp, err := client.GenerativeModel(model).GenerateContent(ctx,
		genai.Text(systemPrompt), genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	raw := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return ParsePodcastContent(raw)
}

var (
	fenceOpen  = regexp.MustCompile("^```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```$")
)

// ParsePodcastContent parses the model output as the four-field structure.
// Leading/trailing code fences are stripped first: the model is instructed to
// omit them, but is not contractually guaranteed to. The payload is treated as
// untrusted; a missing or empty field is an error, not a later nil access.
func ParsePodcastContent(raw string) (*PodcastContent, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = fenceOpen.ReplaceAllString(cleaned, "")
	cleaned = fenceClose.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	var content PodcastContent
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return nil, fmt.Errorf("malformed generator response: %w", err)
	}

	switch {
	case content.Title == "":
		return nil, fmt.Errorf("generator response missing title")
	case content.Content == "":
		return nil, fmt.Errorf("generator response missing content")
	case content.Summary == "":
		return nil, fmt.Errorf("generator response missing summary")
	case len(content.Keywords) == 0:
		return nil, fmt.Errorf("generator response missing keywords")
	}

	return &content, nil
}
