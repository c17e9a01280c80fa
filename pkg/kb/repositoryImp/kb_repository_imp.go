package repositoryImp

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"agrismart/entities"
	"agrismart/pkg/kb/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.KBRepository { return &repo{db} }

func (r *repo) CreateDocWithChunks(ctx context.Context, d *entities.KBDocument, cs []entities.KBChunk) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return fmt.Errorf("insert kb doc: %w", err)
		}
		if len(cs) == 0 {
			return nil
		}
		for i := range cs {
			cs[i].DocID = d.DocID
		}
		if err := tx.Create(&cs).Error; err != nil {
			return fmt.Errorf("insert kb chunks: %w", err)
		}
		return nil
	})
}

func (r *repo) AllChunks(ctx context.Context) ([]entities.KBChunk, error) {
	var cs []entities.KBChunk
	return cs, r.db.WithContext(ctx).Order("doc_id ASC, ord ASC").Find(&cs).Error
}

func (r *repo) DocsByIDs(ctx context.Context, ids []uint) (map[uint]entities.KBDocument, error) {
	if len(ids) == 0 {
		return map[uint]entities.KBDocument{}, nil
	}
	var ds []entities.KBDocument
	if err := r.db.WithContext(ctx).Where("doc_id IN ?", ids).Find(&ds).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]entities.KBDocument, len(ds))
	for i := range ds {
		m[ds[i].DocID] = ds[i]
	}
	return m, nil
}
