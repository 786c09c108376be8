package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/RostianaElla/caihealth/internal/domain/model"
)

const defaultModel = "gemini-3-flash-preview"

// Generator asks Gemini for short health tips tailored to a profile.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator builds a Gemini-backed tip generator. The API key is
// required; the model falls back to the flash preview.
func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Generator{client: client, model: model}, nil
}

var tipSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"category":    {Type: genai.TypeString},
		},
		Required: []string{"title", "description", "category"},
	},
}

// Generate produces two or three tips as structured JSON.
func (g *Generator) Generate(ctx context.Context, profile model.Profile) ([]model.Tip, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(buildPrompt(profile), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   tipSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("generate tips: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var tips []model.Tip
	if err := json.Unmarshal([]byte(raw), &tips); err != nil {
		return nil, fmt.Errorf("decode tips response: %w", err)
	}
	return tips, nil
}

func buildPrompt(p model.Profile) string {
	var b strings.Builder
	b.WriteString("You are a health coach. Give 2-3 short, actionable daily tips for a user with this profile:\n")
	if p.Goal != "" {
		fmt.Fprintf(&b, "- Goal: %s\n", p.Goal)
	}
	if p.WeightKG > 0 {
		fmt.Fprintf(&b, "- Current weight: %d kg\n", p.WeightKG)
	}
	if p.DesiredWeightKG > 0 {
		fmt.Fprintf(&b, "- Desired weight: %d kg\n", p.DesiredWeightKG)
	}
	if p.HeightCM > 0 {
		fmt.Fprintf(&b, "- Height: %d cm\n", p.HeightCM)
	}
	if p.WorkoutFrequency != "" {
		fmt.Fprintf(&b, "- Workouts per week: %s\n", p.WorkoutFrequency)
	}
	if p.Diet != "" {
		fmt.Fprintf(&b, "- Diet: %s\n", p.Diet)
	}
	b.WriteString("Each tip has a title, a one-sentence description, and a category (General, Diet or Workout).")
	return b.String()
}
