package repository

import (
	"context"
	"time"

	"aura/internal/model"
	"aura/internal/storage"
)

// DocumentRepository defines persistence operations for uploaded documents.
// Read operations are scoped to the owning user.
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	ListByOwner(ctx context.Context, userID string) ([]model.Document, error)
	FindByID(ctx context.Context, userID, id string) (*model.Document, error)
	TouchAccess(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, userID, id string) error
}

type documentRepository struct {
	store *storage.Collection[model.Document]
}

// NewDocumentRepository builds a repository over the documents collection.
func NewDocumentRepository(store *storage.Collection[model.Document]) DocumentRepository {
	return &documentRepository{store: store}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	return r.store.Update(func(docs []model.Document) ([]model.Document, error) {
		return append(docs, *doc), nil
	})
}

// ListByOwner preserves insertion order.
func (r *documentRepository) ListByOwner(ctx context.Context, userID string) ([]model.Document, error) {
	docs, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	var owned []model.Document
	for _, d := range docs {
		if d.UserID == userID {
			owned = append(owned, d)
		}
	}
	return owned, nil
}

func (r *documentRepository) FindByID(ctx context.Context, userID, id string) (*model.Document, error) {
	docs, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID == id && docs[i].UserID == userID {
			return &docs[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *documentRepository) TouchAccess(ctx context.Context, id string, at time.Time) error {
	return r.store.Update(func(docs []model.Document) ([]model.Document, error) {
		for i := range docs {
			if docs[i].ID == id {
				docs[i].LastAccessed = at
				return docs, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *documentRepository) Delete(ctx context.Context, userID, id string) error {
	return r.store.Update(func(docs []model.Document) ([]model.Document, error) {
		for i := range docs {
			if docs[i].ID == id && docs[i].UserID == userID {
				return append(docs[:i], docs[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}
