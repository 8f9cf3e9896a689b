package repositoryImp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement/database"
	"placement/entities"
	"placement/pkg/question/repository"
)

func newTestRepo(t *testing.T) repository.QuestionRepository {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "questions.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewSQLite(db)
}

func sampleQuestion(text string) *entities.Question {
	return &entities.Question{
		Text:          text,
		Options:       []string{"4", "5"},
		CorrectAnswer: "4",
		HasOptions:    true,
		Category:      entities.CategoryAptitude,
		CompanyRefs:   []string{database.NewID()},
		Images:        []string{},
	}
}

func TestCreateAndFindByText(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	q := sampleQuestion("What is 2+2?")
	require.NoError(t, r.Create(ctx, q))
	assert.True(t, database.ValidUUID(q.ID))
	assert.False(t, q.CreatedAt.IsZero())

	got, err := r.FindByText(ctx, "What is 2+2?")
	require.NoError(t, err)
	assert.Equal(t, q.ID, got.ID)
	assert.Equal(t, []string{"4", "5"}, got.Options)
	assert.Equal(t, q.CompanyRefs, got.CompanyRefs)
	assert.Equal(t, entities.CategoryAptitude, got.Category)

	_, err = r.FindByText(ctx, "what is 2+2?")
	assert.ErrorIs(t, err, database.ErrNotFound, "text match is case-sensitive")
}

func TestCreateDuplicateText(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, sampleQuestion("Reverse a linked list.")))
	err := r.Create(ctx, sampleQuestion("Reverse a linked list."))
	assert.ErrorIs(t, err, database.ErrDuplicateKey)
}

func TestFindByIDsNewestFirst(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	older := sampleQuestion("first")
	require.NoError(t, r.Create(ctx, older))
	time.Sleep(5 * time.Millisecond)
	newer := sampleQuestion("second")
	require.NoError(t, r.Create(ctx, newer))

	got, err := r.FindByIDs(ctx, []string{older.ID, newer.ID, database.NewID()})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)

	empty, err := r.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDelete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	q := sampleQuestion("to be removed")
	require.NoError(t, r.Create(ctx, q))
	require.NoError(t, r.Delete(ctx, q.ID))

	_, err := r.FindByText(ctx, "to be removed")
	assert.ErrorIs(t, err, database.ErrNotFound)
}
