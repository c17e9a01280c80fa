package service

import (
	"context"

	"agrismart/entities"
)

// Hit is a search result with the owning document's metadata. Score is the
// cosine similarity for vector search and the matched-term count otherwise.
type Hit struct {
	ChunkID   uint    `json:"chunk_id"`
	DocID     uint    `json:"doc_id"`
	Ord       int     `json:"ord"`
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
	DocTitle  string  `json:"doc_title,omitempty"`
	SourceURL string  `json:"source_url,omitempty"`
}

type KBService interface {
	AddDocument(ctx context.Context, title, tags, text, sourceURL string) (*entities.KBDocument, int, error)
	Search(ctx context.Context, query string, k int) ([]Hit, error)
}
