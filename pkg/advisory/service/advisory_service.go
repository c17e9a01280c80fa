package service

import (
	"context"
	"fmt"

	"agrismart/pkg/ai"
	"agrismart/pkg/apperr"
)

// ErrTryAgain is returned for any advisory failure: timeout, transport
// error, bad model output or a panic inside the client.
var ErrTryAgain = fmt.Errorf("%w: the advisory service did not answer, please try again", apperr.ErrUnavailable)

// FallbackAnswer replaces an empty model answer.
const FallbackAnswer = "I couldn't process that. Please try again."

type AdvisoryService interface {
	Advice(ctx context.Context, query string, userCtx map[string]any) (string, error)
	// Diagnose takes the image as base64, with or without a data: URL prefix.
	Diagnose(ctx context.Context, imageB64, mimeType string) (*ai.Diagnosis, error)
	MarketTrends(ctx context.Context) ([]ai.MarketTrend, error)
}
