package service

import (
	"errors"
	"fmt"
	"strings"

	"placement/entities"
)

var (
	ErrEmptyBatch = errors.New("request body must contain a non-empty 'questions' array")

	ErrMalformedQuestion = errors.New("malformed question record")
	ErrMissingFields     = errors.New("required fields are missing: question, correctAnswer and hasOptions are required")
	ErrInvalidCategory   = fmt.Errorf("invalid or missing category, allowed: %s", allowedCategories())
	ErrInvalidOptions    = errors.New("hasOptions is true but 'options' must be an array with at least 2 string or number entries")
	ErrCompanyRequired   = errors.New("company is required and must be a company id or company name (or array of them)")

	ErrCompanyResolution = errors.New("error resolving or creating companies")
	ErrInvalidCompanyID  = errors.New("invalid company id after resolution")
	ErrDuplicateQuestion = errors.New("duplicate question found (word-for-word), skipped creation")
	ErrPersistence       = errors.New("error creating question")

	ErrCompanyLookupRequired = errors.New("'company' (id or name) is required")
	ErrNoCompanies           = errors.New("no matching companies found")
)

func allowedCategories() string {
	names := make([]string, len(entities.Categories))
	for i, c := range entities.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
