// pkg/ai/mock_client.go

package ai

import (
	"context"
	"fmt"
	"strings"
)

type mockClient struct{}

// NewMock returns canned answers; used when no API key is configured.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) Advice(_ context.Context, query string, farmCtx map[string]any) (string, error) {
	q := strings.ToLower(query)
	var b strings.Builder
	b.WriteString("**AgriSmart (offline mode)**\n\n")
	switch {
	case strings.Contains(q, "pest") || strings.Contains(q, "aphid"):
		b.WriteString("- Scout 5 spots per bed and check leaf undersides.\n- Start with neem oil or insecticidal soap before anything stronger.\n")
	case strings.Contains(q, "water") || strings.Contains(q, "irrigat"):
		b.WriteString("- Water early in the morning and check soil moisture 5 cm down first.\n")
	case strings.Contains(q, "soil") || strings.Contains(q, "fertil"):
		b.WriteString("- Test soil pH and add compost before the next planting.\n")
	default:
		b.WriteString("- Keep records of planting dates and yields to spot trends.\n")
	}
	if crops, ok := farmCtx[CtxCrops].([]string); ok && len(crops) > 0 {
		fmt.Fprintf(&b, "- Crops on file: %s.\n", strings.Join(crops, ", "))
	}
	return b.String(), nil
}

func (m *mockClient) Diagnose(_ context.Context, image []byte, _ string) (*Diagnosis, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	return &Diagnosis{
		PlantName:    "Unknown plant",
		HealthStatus: "Healthy",
		Diagnosis:    "No model configured; showing a placeholder result.",
		Treatment:    []string{"Retake the photo in daylight", "Configure GEMINI_API_KEY for a real diagnosis"},
		Urgency:      "Low",
	}, nil
}

func (m *mockClient) MarketTrends(context.Context) ([]MarketTrend, error) {
	return []MarketTrend{
		{Crop: "Wheat", PriceTrend: "Stable", CurrentPrice: "n/a", Outlook: "Offline sample data."},
		{Crop: "Rice", PriceTrend: "Stable", CurrentPrice: "n/a", Outlook: "Offline sample data."},
		{Crop: "Corn", PriceTrend: "Stable", CurrentPrice: "n/a", Outlook: "Offline sample data."},
		{Crop: "Soybeans", PriceTrend: "Stable", CurrentPrice: "n/a", Outlook: "Offline sample data."},
	}, nil
}
