// pkg/ai/client.go

package ai

import "context"

// Client is the advisory model. Implementations may be slow or down;
// callers bound them with ctx.
type Client interface {
	Advice(ctx context.Context, query string, farmCtx map[string]any) (string, error)
	Diagnose(ctx context.Context, image []byte, mimeType string) (*Diagnosis, error)
	MarketTrends(ctx context.Context) ([]MarketTrend, error)
}

// Keys the server adds to the advice context. They carry a farm_ prefix so
// the caller's own keys pass through untouched.
const (
	CtxCrops     = "farm_crops"
	CtxOpenTasks = "farm_open_tasks"
	CtxKBNotes   = "farm_kb_notes"
)

type Diagnosis struct {
	PlantName    string   `json:"plantName"`
	HealthStatus string   `json:"healthStatus"` // Healthy|Diseased|Pest Infestation
	Diagnosis    string   `json:"diagnosis"`
	Treatment    []string `json:"treatment"`
	Urgency      string   `json:"urgency"` // Low|Medium|High
}

type MarketTrend struct {
	Crop         string `json:"crop"`
	PriceTrend   string `json:"priceTrend"` // Rising|Falling|Stable
	CurrentPrice string `json:"currentPrice"`
	Outlook      string `json:"outlook"`
}
