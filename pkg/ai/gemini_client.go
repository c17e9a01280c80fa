// pkg/ai/gemini_client.go

package ai

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
)

const systemInstruction = "You are AgriSmart AI, a helpful and knowledgeable agricultural expert. " +
	"You help farmers with crop selection, pest control, soil health, and market trends. " +
	"Use a friendly and encouraging tone."

type gemini struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
}

func NewGemini(endpoint, key, model string, timeout time.Duration) Client {
	if endpoint == "" {
		endpoint = "https://generativelanguage.googleapis.com"
	}
	return &gemini{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		model:    model,
		httpc:    &http.Client{Timeout: timeout},
	}
}

// wire types for models/{model}:generateContent

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]schema `json:"properties,omitempty"`
	Items       *schema           `json:"items,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type generateReq struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResp struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var diagnosisSchema = schema{
	Type: "OBJECT",
	Properties: map[string]schema{
		"plantName":    {Type: "STRING"},
		"healthStatus": {Type: "STRING", Description: "Healthy, Diseased, or Pest Infestation"},
		"diagnosis":    {Type: "STRING"},
		"treatment":    {Type: "ARRAY", Items: &schema{Type: "STRING"}},
		"urgency":      {Type: "STRING", Description: "Low, Medium, High"},
	},
	Required: []string{"plantName", "healthStatus", "diagnosis", "treatment", "urgency"},
}

var marketSchema = schema{
	Type: "ARRAY",
	Items: &schema{
		Type: "OBJECT",
		Properties: map[string]schema{
			"crop":         {Type: "STRING"},
			"priceTrend":   {Type: "STRING", Description: "Rising, Falling, or Stable"},
			"currentPrice": {Type: "STRING"},
			"outlook":      {Type: "STRING"},
		},
	},
}

func (c *gemini) Advice(ctx context.Context, query string, farmCtx map[string]any) (string, error) {
	text, err := c.generate(ctx, generateReq{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: renderAdvicePrompt(query, farmCtx)}},
		}},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (c *gemini) Diagnose(ctx context.Context, image []byte, mimeType string) (*Diagnosis, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	text, err := c.generate(ctx, generateReq{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: "Analyze this plant image. Identify the plant, detect any diseases or pests, and provide a treatment plan. Format the output as JSON."},
				{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
			},
		}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json", ResponseSchema: &diagnosisSchema},
	})
	if err != nil {
		return nil, err
	}
	var out Diagnosis
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("parse diagnosis: %w", err)
	}
	if out.Treatment == nil {
		out.Treatment = []string{}
	}
	return &out, nil
}

func (c *gemini) MarketTrends(ctx context.Context) ([]MarketTrend, error) {
	text, err := c.generate(ctx, generateReq{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: "Provide current global market trends for major crops like Wheat, Rice, Corn, and Soybeans. Include a brief outlook for the next month. Format as JSON."}},
		}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json", ResponseSchema: &marketSchema},
	})
	if err != nil {
		return nil, err
	}
	out := []MarketTrend{}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("parse market trends: %w", err)
	}
	return out, nil
}

// generate returns the text of the first candidate.
func (c *gemini) generate(ctx context.Context, body generateReq) (string, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("no candidates")
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

func renderAdvicePrompt(query string, farmCtx map[string]any) string {
	if farmCtx == nil {
		farmCtx = map[string]any{}
	}
	ctxJSON, _ := json.Marshal(farmCtx)
	return fmt.Sprintf(`As an expert agricultural consultant, answer this farmer's question: %s.
Context about their farm: %s.
Provide practical, sustainable, and actionable advice.`, query, ctxJSON)
}
