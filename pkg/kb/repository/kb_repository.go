package repository

import (
	"context"

	"agrismart/entities"
)

type KBRepository interface {
	// CreateDocWithChunks stores d and its chunks in one transaction and
	// sets DocID on every chunk.
	CreateDocWithChunks(ctx context.Context, d *entities.KBDocument, cs []entities.KBChunk) error
	AllChunks(ctx context.Context) ([]entities.KBChunk, error)
	DocsByIDs(ctx context.Context, ids []uint) (map[uint]entities.KBDocument, error)
}
