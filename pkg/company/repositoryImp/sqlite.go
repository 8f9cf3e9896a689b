package repositoryImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"placement/database"
	"placement/entities"
	"placement/pkg/company/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func NewSQLite(db *gorm.DB) repository.CompanyRepository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) ValidID(id string) bool { return database.ValidUUID(id) }

func (r *sqliteRepo) FindByID(ctx context.Context, id string) (*entities.Company, error) {
	var c entities.Company
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := r.loadRefs(ctx, []*entities.Company{&c}); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sqliteRepo) FindByIDs(ctx context.Context, ids []string) ([]entities.Company, error) {
	if len(ids) == 0 {
		return []entities.Company{}, nil
	}
	var out []entities.Company
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name asc").Find(&out).Error; err != nil {
		return nil, err
	}
	ptrs := make([]*entities.Company, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	return out, r.loadRefs(ctx, ptrs)
}

func (r *sqliteRepo) FindByName(ctx context.Context, name string) (*entities.Company, error) {
	var c entities.Company
	if err := r.db.WithContext(ctx).First(&c, "name_key = ?", database.NameKey(name)).Error; err != nil {
		return nil, notFound(err)
	}
	if err := r.loadRefs(ctx, []*entities.Company{&c}); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sqliteRepo) FindOrCreateByName(ctx context.Context, name string) (*entities.Company, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, errors.New("company name is empty")
	}
	c := entities.Company{ID: database.NewID(), Name: name, NameKey: database.NameKey(name)}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name_key"}}, DoNothing: true}).
		Create(&c)
	if res.Error != nil {
		return nil, false, fmt.Errorf("create company %q: %w", name, res.Error)
	}
	if res.RowsAffected == 1 {
		c.QuestionRefs = []string{}
		return &c, true, nil
	}
	existing, err := r.FindByName(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("load company %q: %w", name, err)
	}
	return existing, false, nil
}

func (r *sqliteRepo) AddQuestionRef(ctx context.Context, companyID, questionID string) error {
	db := r.db.WithContext(ctx)
	touched := db.Model(&entities.Company{}).Where("id = ?", companyID).UpdateColumn("updated_at", time.Now())
	if touched.Error != nil {
		return touched.Error
	}
	if touched.RowsAffected == 0 {
		return fmt.Errorf("company %s: %w", companyID, database.ErrNotFound)
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.CompanyQuestion{CompanyID: companyID, QuestionID: questionID}).Error
}

func (r *sqliteRepo) RemoveQuestionRef(ctx context.Context, companyID, questionID string) error {
	return r.db.WithContext(ctx).
		Delete(&entities.CompanyQuestion{}, "company_id = ? AND question_id = ?", companyID, questionID).Error
}

func (r *sqliteRepo) ListNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).Model(&entities.Company{}).Order("name asc").Pluck("name", &names).Error
	return names, err
}

// loadRefs fills QuestionRefs in insertion order.
func (r *sqliteRepo) loadRefs(ctx context.Context, cs []*entities.Company) error {
	if len(cs) == 0 {
		return nil
	}
	byID := make(map[string]*entities.Company, len(cs))
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		c.QuestionRefs = []string{}
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}
	var links []entities.CompanyQuestion
	if err := r.db.WithContext(ctx).
		Where("company_id IN ?", ids).
		Order("created_at asc, rowid asc").
		Find(&links).Error; err != nil {
		return fmt.Errorf("load question refs: %w", err)
	}
	for _, l := range links {
		if c, ok := byID[l.CompanyID]; ok {
			c.QuestionRefs = append(c.QuestionRefs, l.QuestionID)
		}
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.ErrNotFound
	}
	return err
}
