package repositoryImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement/database"
	"placement/pkg/company/repository"
)

func newTestRepo(t *testing.T) repository.CompanyRepository {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "companies.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewSQLite(db)
}

func TestFindOrCreateByName_IsIdempotentAcrossCase(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first, created, err := r.FindOrCreateByName(ctx, "Google")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, r.ValidID(first.ID))
	assert.Equal(t, "Google", first.Name)

	for _, variant := range []string{"google", "  GOOGLE  ", "Google"} {
		got, created, err := r.FindOrCreateByName(ctx, variant)
		require.NoError(t, err)
		assert.False(t, created, variant)
		assert.Equal(t, first.ID, got.ID, variant)
		assert.Equal(t, "Google", got.Name, "first spelling is kept")
	}

	names, err := r.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Google"}, names)
}

func TestFindOrCreateByName_RejectsBlank(t *testing.T) {
	r := newTestRepo(t)
	_, _, err := r.FindOrCreateByName(context.Background(), "   ")
	assert.Error(t, err)
}

func TestFindByName(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.FindByName(ctx, "Amazon")
	assert.ErrorIs(t, err, database.ErrNotFound)

	c, _, err := r.FindOrCreateByName(ctx, "Amazon")
	require.NoError(t, err)

	got, err := r.FindByName(ctx, "aMaZoN")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = r.FindByName(ctx, "Amazo")
	assert.ErrorIs(t, err, database.ErrNotFound, "match is exact, not prefix")
}

func TestAddQuestionRef_IsSetUnion(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	c, _, err := r.FindOrCreateByName(ctx, "Infosys")
	require.NoError(t, err)
	q1, q2 := database.NewID(), database.NewID()

	require.NoError(t, r.AddQuestionRef(ctx, c.ID, q1))
	require.NoError(t, r.AddQuestionRef(ctx, c.ID, q1))
	require.NoError(t, r.AddQuestionRef(ctx, c.ID, q2))

	got, err := r.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{q1, q2}, got.QuestionRefs)

	require.NoError(t, r.RemoveQuestionRef(ctx, c.ID, q1))
	got, err = r.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{q2}, got.QuestionRefs)
}

func TestAddQuestionRef_UnknownCompany(t *testing.T) {
	r := newTestRepo(t)
	err := r.AddQuestionRef(context.Background(), database.NewID(), database.NewID())
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestFindByIDs(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	tcs, _, err := r.FindOrCreateByName(ctx, "TCS")
	require.NoError(t, err)
	adobe, _, err := r.FindOrCreateByName(ctx, "Adobe")
	require.NoError(t, err)
	qid := database.NewID()
	require.NoError(t, r.AddQuestionRef(ctx, tcs.ID, qid))

	got, err := r.FindByIDs(ctx, []string{tcs.ID, adobe.ID, database.NewID()})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Adobe", got[0].Name)
	assert.Empty(t, got[0].QuestionRefs)
	assert.Equal(t, "TCS", got[1].Name)
	assert.Equal(t, []string{qid}, got[1].QuestionRefs)

	none, err := r.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListNamesSorted(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	for _, n := range []string{"Wipro", "Accenture", "Microsoft"} {
		_, _, err := r.FindOrCreateByName(ctx, n)
		require.NoError(t, err)
	}
	names, err := r.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Accenture", "Microsoft", "Wipro"}, names)
}

func TestFindByID_NotFound(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.FindByID(context.Background(), database.NewID())
	assert.ErrorIs(t, err, database.ErrNotFound)
}
