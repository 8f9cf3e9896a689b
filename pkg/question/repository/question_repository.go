package repository

import (
	"context"

	"placement/entities"
)

type QuestionRepository interface {
	// Create assigns q.ID when empty. A question whose text already exists
	// fails with database.ErrDuplicateKey.
	Create(ctx context.Context, q *entities.Question) error
	FindByText(ctx context.Context, text string) (*entities.Question, error)
	// FindByIDs returns the matching questions, newest first. Unknown ids are ignored.
	FindByIDs(ctx context.Context, ids []string) ([]entities.Question, error)
	Delete(ctx context.Context, id string) error
}
