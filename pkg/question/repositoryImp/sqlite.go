package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"placement/database"
	"placement/entities"
	"placement/pkg/question/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func NewSQLite(db *gorm.DB) repository.QuestionRepository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(ctx context.Context, q *entities.Question) error {
	if q.ID == "" {
		q.ID = database.NewID()
	}
	if err := r.db.WithContext(ctx).Create(q).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("question %q: %w", q.Text, database.ErrDuplicateKey)
		}
		return err
	}
	return nil
}

func (r *sqliteRepo) FindByText(ctx context.Context, text string) (*entities.Question, error) {
	var q entities.Question
	if err := r.db.WithContext(ctx).First(&q, "question = ?", text).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *sqliteRepo) FindByIDs(ctx context.Context, ids []string) ([]entities.Question, error) {
	out := []entities.Question{}
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at desc, id desc").Find(&out).Error
	return out, err
}

func (r *sqliteRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.Question{}, "id = ?", id).Error
}
