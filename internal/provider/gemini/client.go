// Package gemini is a minimal REST client for the Google generative
// language API, covering the two calls the app makes: structured meal-image
// analysis and streamed chat.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ccorchooo/CalAIFree/internal/model"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
)

const analysisPrompt = "Analyze this image of a meal. Identify the meal, its primary ingredients, " +
	"and estimate the total calorie count. Also provide an estimated breakdown of macronutrients " +
	"(protein, carbs, fats) in grams, and a health score from 1-10. Provide your reasoning for the estimates."

// mealAnalysisSchema constrains the analysis response to the fixed shape the
// app stores. Descriptions steer the model; required fields are enforced by
// the API.
var mealAnalysisSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "mealName": {"type": "STRING", "description": "A short, descriptive name for the meal."},
    "ingredients": {"type": "ARRAY", "description": "The main ingredients identified in the meal.", "items": {"type": "STRING"}},
    "calories": {"type": "INTEGER", "description": "Estimated total calorie count, a single integer."},
    "macros": {
      "type": "OBJECT",
      "description": "Estimated macronutrient breakdown in grams.",
      "properties": {
        "protein": {"type": "INTEGER"},
        "carbs": {"type": "INTEGER"},
        "fats": {"type": "INTEGER"}
      },
      "required": ["protein", "carbs", "fats"]
    },
    "healthScore": {"type": "INTEGER", "description": "Health score from 1 (least healthy) to 10 (most healthy)."},
    "reasoning": {"type": "STRING", "description": "One-sentence explanation of the estimates."}
  },
  "required": ["mealName", "ingredients", "calories", "macros", "healthScore", "reasoning"]
}`)

type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	var b strings.Builder
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			b.WriteString(p.Text)
		}
		break
	}
	return b.String()
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

func (c *Client) model() string {
	if strings.TrimSpace(c.Model) == "" {
		return defaultModel
	}
	return strings.TrimSpace(c.Model)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}

func (c *Client) newRequest(ctx context.Context, endpoint string, reqBody generateRequest) (*http.Request, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("missing Gemini API key (set GEMINI_API_KEY)")
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal Gemini request: %w", err)
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:%s", c.baseURL(), c.model(), endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)
	return req, nil
}

// wireAnalysis mirrors model.MealAnalysis with a pointer macros object so a
// missing macros field is distinguishable from an all-zero one.
type wireAnalysis struct {
	MealName    string        `json:"mealName"`
	Ingredients []string      `json:"ingredients"`
	Calories    int           `json:"calories"`
	Macros      *model.Macros `json:"macros"`
	HealthScore int           `json:"healthScore"`
	Reasoning   string        `json:"reasoning"`
}

// AnalyzeMeal submits a JPEG image with the fixed instruction prompt and
// parses the schema-constrained JSON reply. Validation is structural only:
// the macros object must be present with numeric fields; nutritional
// plausibility is not checked.
func (c *Client) AnalyzeMeal(ctx context.Context, jpeg []byte) (model.MealAnalysis, error) {
	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(jpeg),
				}},
				{Text: analysisPrompt},
			},
		}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   mealAnalysisSchema,
		},
	}

	req, err := c.newRequest(ctx, "generateContent", reqBody)
	if err != nil {
		return model.MealAnalysis{}, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return model.MealAnalysis{}, fmt.Errorf("execute analysis request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.MealAnalysis{}, fmt.Errorf("read analysis response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.MealAnalysis{}, fmt.Errorf("analysis request failed with status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.MealAnalysis{}, fmt.Errorf("decode analysis response: %w", err)
	}
	text := strings.TrimSpace(parsed.text())
	if text == "" {
		return model.MealAnalysis{}, fmt.Errorf("analysis response contained no candidates")
	}

	var wire wireAnalysis
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return model.MealAnalysis{}, fmt.Errorf("invalid analysis payload: %w", err)
	}
	if wire.Macros == nil {
		return model.MealAnalysis{}, fmt.Errorf("invalid analysis payload: macros are missing or incorrect")
	}

	return model.MealAnalysis{
		MealName:    wire.MealName,
		Ingredients: wire.Ingredients,
		Calories:    wire.Calories,
		Macros:      *wire.Macros,
		HealthScore: wire.HealthScore,
		Reasoning:   wire.Reasoning,
	}, nil
}
