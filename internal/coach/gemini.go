package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/meltforce/jellyfit/internal/models"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.5-flash"
)

// GeminiClient implements Generator against the Gemini generateContent REST
// endpoint.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: GeminiClient satisfies Generator.
var _ Generator = (*GeminiClient)(nil)

// NewGeminiClient creates a client. Empty model and baseURL select the defaults.
func NewGeminiClient(apiKey, model, baseURL string, timeout time.Duration) *GeminiClient {
	if model == "" {
		model = DefaultGeminiModel
	}
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
	ResponseSchema   any    `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var errEmptyResponse = errors.New("gemini: empty response")

func (c *GeminiClient) generate(ctx context.Context, req generateRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("gemini: encode request: %w", err)
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: %s returned %d: %s", c.model, resp.StatusCode, body)
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

func userPrompt(text string) []content {
	return []content{{Role: "user", Parts: []part{{Text: text}}}}
}

var routineSchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"name":             map[string]any{"type": "STRING"},
			"type":             map[string]any{"type": "STRING", "enum": []string{"Strength", "Mobility", "Performance", "Circuit"}},
			"description":      map[string]any{"type": "STRING"},
			"defaultExercises": map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
		},
		"required": []string{"name", "type", "description", "defaultExercises"},
	},
}

var planSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"days": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"day":       map[string]any{"type": "STRING"},
					"focus":     map[string]any{"type": "STRING"},
					"type":      map[string]any{"type": "STRING"},
					"isRestDay": map[string]any{"type": "BOOLEAN"},
					"exercises": map[string]any{
						"type": "ARRAY",
						"items": map[string]any{
							"type": "OBJECT",
							"properties": map[string]any{
								"name":  map[string]any{"type": "STRING"},
								"sets":  map[string]any{"type": "INTEGER"},
								"reps":  map[string]any{"type": "STRING"},
								"rest":  map[string]any{"type": "STRING"},
								"notes": map[string]any{"type": "STRING"},
							},
							"required": []string{"name", "sets", "reps"},
						},
					},
				},
				"required": []string{"day", "focus", "type", "isRestDay", "exercises"},
			},
		},
	},
	"required": []string{"days"},
}

func (c *GeminiClient) Routines(ctx context.Context, sport string) ([]models.Template, error) {
	prompt := fmt.Sprintf(`Design 4 distinct workout routines for a %q athlete:
1. Strength: the muscles %[1]s relies on.
2. Mobility: the range of motion %[1]s demands.
3. Performance: power, speed and high intensity work for %[1]s.
4. Circuit: general endurance.
Respond with a JSON array only.`, sport)

	text, err := c.generate(ctx, generateRequest{
		Contents:         userPrompt(prompt),
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json", ResponseSchema: routineSchema},
	})
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, errEmptyResponse
	}

	var templates []models.Template
	if err := json.Unmarshal([]byte(text), &templates); err != nil {
		return nil, fmt.Errorf("gemini: decode routines: %w", err)
	}
	return templates, nil
}

func (c *GeminiClient) WeeklyPlan(ctx context.Context, profile models.UserProfile) (*models.WeeklyPlan, error) {
	prompt := fmt.Sprintf(`Build a 7-day training plan for this athlete:
Sport: %s
Experience: %s
Age: %d
Goals: %s
Injuries or limitations: %s
Training days per week: %d

Return one entry per day from Monday to Sunday. Use English weekday names
(Monday, Tuesday, ...) for "day". Mark days without training as rest days
with no exercises. Respond with JSON only.`,
		profile.Sport, profile.ExperienceLevel, profile.Age,
		orNone(profile.Goals), orNone(profile.Injuries), profile.Frequency)

	text, err := c.generate(ctx, generateRequest{
		Contents:         userPrompt(prompt),
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json", ResponseSchema: planSchema},
	})
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, errEmptyResponse
	}

	var plan models.WeeklyPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, fmt.Errorf("gemini: decode plan: %w", err)
	}
	return &plan, nil
}

func (c *GeminiClient) Insights(ctx context.Context, sessions []models.Session) (string, error) {
	var sb strings.Builder
	for _, s := range sessions {
		names := make([]string, len(s.Exercises))
		for i, ex := range s.Exercises {
			names[i] = ex.Name
		}
		fmt.Fprintf(&sb, "- %s: %s (%d mins). Exercises: %s\n",
			s.Date.Format(time.RFC3339), s.Category, s.DurationMinutes, strings.Join(names, ", "))
	}

	prompt := `You are an elite conditioning coach. Review these recent workouts:
` + sb.String() + `
Reply with a three sentence insight: comment on volume and consistency, name one
specific area to focus on next (for example explosive power or injury prevention),
and keep the tone motivating and professional. Plain text only, no markdown.`

	return c.generate(ctx, generateRequest{Contents: userPrompt(prompt)})
}

func (c *GeminiClient) Chat(ctx context.Context, profile models.UserProfile, message string, history []Message) (string, error) {
	system := fmt.Sprintf(`You are JellyCoach, a friendly strength and conditioning coach.
The athlete is %s, a %s level %s player. Goals: %s. Injuries or limitations: %s.
Keep answers short and practical.`,
		profile.Name, profile.ExperienceLevel, profile.Sport, orNone(profile.Goals), orNone(profile.Injuries))

	contents := make([]content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, content{Role: string(m.Role), Parts: []part{{Text: m.Text}}})
	}
	contents = append(contents, content{Role: string(RoleUser), Parts: []part{{Text: message}}})

	return c.generate(ctx, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: system}}},
		Contents:          contents,
	})
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
