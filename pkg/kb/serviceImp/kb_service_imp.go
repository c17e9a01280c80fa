package serviceImp

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"agrismart/entities"
	"agrismart/pkg/apperr"
	"agrismart/pkg/kb/embedder"
	"agrismart/pkg/kb/repository"
	"agrismart/pkg/kb/service"
)

const chunkRunes = 1000

// Embedder turns texts into vectors, one per text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Svc struct {
	r   repository.KBRepository
	emb Embedder
}

// New builds the service. With a nil emb, search ranks by keyword only.
func New(r repository.KBRepository, emb Embedder) *Svc { return &Svc{r: r, emb: emb} }

var _ service.KBService = (*Svc)(nil)

// chunkText cuts at the first newline after maxRunes runes.
func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = chunkRunes
	}
	var parts []string
	var cur strings.Builder
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			if s := strings.TrimSpace(cur.String()); s != "" {
				parts = append(parts, s)
			}
			cur.Reset()
			count = 0
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		parts = append(parts, s)
	}
	return parts
}

func (s *Svc) AddDocument(ctx context.Context, title, tags, text, sourceURL string) (*entities.KBDocument, int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, 0, fmt.Errorf("title is required: %w", apperr.ErrValidation)
	}
	chs := chunkText(text, chunkRunes)
	if len(chs) == 0 {
		return nil, 0, fmt.Errorf("text is required: %w", apperr.ErrValidation)
	}

	rows := make([]entities.KBChunk, len(chs))
	for i := range chs {
		rows[i] = entities.KBChunk{Ord: i, Text: chs[i]}
	}
	if vecs := s.embedChunks(ctx, title, chs); vecs != nil {
		for i := range rows {
			rows[i].Embedding = embedder.FloatsToBytes(vecs[i])
		}
	}

	d := &entities.KBDocument{Title: title, Tags: strings.TrimSpace(tags), SourceURL: sourceURL}
	if err := s.r.CreateDocWithChunks(ctx, d, rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

// embedChunks embeds every chunk with the document title in front of it, so
// a chunk deep in an article still carries what the article is about.
// It returns nil when embedding is off or fails; the chunks are then stored
// without vectors and found by keyword.
func (s *Svc) embedChunks(ctx context.Context, title string, chs []string) [][]float32 {
	if s.emb == nil {
		return nil
	}
	in := make([]string, len(chs))
	for i, c := range chs {
		in[i] = title + "\n\n" + c
	}
	vecs, err := s.emb.Embed(ctx, in)
	if err != nil || len(vecs) != len(chs) {
		log.Printf("[kb] embed %q: %v (storing %d chunks without vectors)", title, err, len(chs))
		return nil
	}
	return vecs
}

// score is the number of query terms found in text, case-insensitive.
func score(terms []string, text string) float64 {
	low := strings.ToLower(text)
	n := 0.0
	for _, t := range terms {
		if strings.Contains(low, t) {
			n++
		}
	}
	return n
}

// Search returns at most k chunks, best first. When the query can be
// embedded and some chunks carry vectors of the same size, those are ranked
// by cosine similarity. Otherwise chunks matching at least one query term
// are ranked by how many terms they contain.
func (s *Svc) Search(ctx context.Context, query string, k int) ([]service.Hit, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 || k <= 0 {
		return []service.Hit{}, nil
	}
	chunks, err := s.r.AllChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load kb chunks: %w", err)
	}

	hits := s.vectorHits(ctx, query, chunks)
	if len(hits) == 0 {
		hits = keywordHits(terms, chunks)
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}

	seen := map[uint]struct{}{}
	ids := make([]uint, 0, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.DocID]; !ok {
			seen[h.DocID] = struct{}{}
			ids = append(ids, h.DocID)
		}
	}
	meta, err := s.r.DocsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load kb docs: %w", err)
	}
	for i := range hits {
		if d, ok := meta[hits[i].DocID]; ok {
			hits[i].DocTitle = d.Title
			hits[i].SourceURL = d.SourceURL
		}
	}
	return hits, nil
}

func (s *Svc) vectorHits(ctx context.Context, query string, chunks []entities.KBChunk) []service.Hit {
	if s.emb == nil || len(chunks) == 0 {
		return nil
	}
	vecs, err := s.emb.Embed(ctx, []string{query})
	if err != nil || len(vecs) != 1 || len(vecs[0]) == 0 {
		log.Printf("[kb] embed query: %v (falling back to keywords)", err)
		return nil
	}
	q := vecs[0]
	var hits []service.Hit
	for _, ch := range chunks {
		v := embedder.BytesToFloats(ch.Embedding)
		if len(v) != len(q) {
			continue
		}
		if sc := embedder.Cosine(q, v); sc > 0 {
			hits = append(hits, hitOf(ch, sc))
		}
	}
	return hits
}

func keywordHits(terms []string, chunks []entities.KBChunk) []service.Hit {
	hits := make([]service.Hit, 0, len(chunks))
	for _, ch := range chunks {
		if sc := score(terms, ch.Text); sc > 0 {
			hits = append(hits, hitOf(ch, sc))
		}
	}
	return hits
}

func hitOf(ch entities.KBChunk, sc float64) service.Hit {
	return service.Hit{ChunkID: ch.ChunkID, DocID: ch.DocID, Ord: ch.Ord, Text: ch.Text, Score: sc}
}
