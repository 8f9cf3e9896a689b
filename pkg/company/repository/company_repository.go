package repository

import (
	"context"

	"placement/entities"
)

// CompanyRepository stores companies and their question back-references.
// Lookups that match nothing return database.ErrNotFound.
type CompanyRepository interface {
	// ValidID reports whether id has the store's native identifier format.
	ValidID(id string) bool
	FindByID(ctx context.Context, id string) (*entities.Company, error)
	FindByIDs(ctx context.Context, ids []string) ([]entities.Company, error)
	// FindByName matches the trimmed name exactly, ignoring case.
	FindByName(ctx context.Context, name string) (*entities.Company, error)
	// FindOrCreateByName returns the company named name, creating it atomically
	// when absent. created is true only for the call that inserted it.
	FindOrCreateByName(ctx context.Context, name string) (c *entities.Company, created bool, err error)
	// AddQuestionRef adds questionID to the company's questions if not already present.
	AddQuestionRef(ctx context.Context, companyID, questionID string) error
	RemoveQuestionRef(ctx context.Context, companyID, questionID string) error
	// ListNames returns every company name in ascending order.
	ListNames(ctx context.Context) ([]string, error)
}
