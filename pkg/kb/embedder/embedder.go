// Package embedder turns knowledge-base text into vectors through the
// Gemini batchEmbedContents endpoint.
package embedder

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
)

// maxBatch is the API limit on requests per batchEmbedContents call.
const maxBatch = 100

type Client struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
}

func New(endpoint, key, model string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = "https://generativelanguage.googleapis.com"
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		model:    strings.TrimPrefix(model, "models/"),
		httpc:    &http.Client{Timeout: timeout},
	}
}

type embedPart struct {
	Text string `json:"text"`
}

type embedRequest struct {
	Model   string `json:"model"`
	Content struct {
		Parts []embedPart `json:"parts"`
	} `json:"content"`
}

type batchReq struct {
	Requests []embedRequest `json:"requests"`
}

type batchResp struct {
	Embeddings []struct {
		Values []float32 `json:"values"`
	} `json:"embeddings"`
}

// Embed returns one vector per text, in order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatch {
		end := min(start+maxBatch, len(texts))
		vecs, err := c.batch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vecs...)
	}
	return out, nil
}

func (c *Client) batch(ctx context.Context, texts []string) ([][]float32, error) {
	body := batchReq{Requests: make([]embedRequest, len(texts))}
	for i, t := range texts {
		body.Requests[i].Model = "models/" + c.model
		body.Requests[i].Content.Parts = []embedPart{{Text: t}}
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:batchEmbedContents", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("embed status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out batchResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}
	if len(out.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embed: got %d vectors for %d texts", len(out.Embeddings), len(texts))
	}
	res := make([][]float32, len(out.Embeddings))
	for i := range out.Embeddings {
		res[i] = out.Embeddings[i].Values
	}
	return res, nil
}

// FloatsToBytes packs v little-endian for the kb_chunks.embedding blob.
func FloatsToBytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func BytesToFloats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out
}

// Cosine is 0 when the lengths differ or either vector is zero.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
