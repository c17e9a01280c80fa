package entities

import "time"

// KBDocument is a farm note or fetched article used as advice context.
type KBDocument struct {
	DocID     uint      `gorm:"primaryKey" json:"doc_id"`
	Title     string    `gorm:"not null" json:"title"`
	SourceURL string    `json:"source_url"`
	Tags      string    `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type KBChunk struct {
	ChunkID   uint      `gorm:"primaryKey" json:"chunk_id"`
	DocID     uint      `gorm:"index" json:"doc_id"`
	Ord       int       `json:"ord"`
	Text      string    `json:"text"`
	Embedding []byte    `json:"-"` // little-endian float32; empty when embedding was off or failed
	CreatedAt time.Time `json:"created_at"`
}
