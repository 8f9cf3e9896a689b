package service

import (
	"context"

	"placement/entities"
)

type QuestionService interface {
	// AddQuestions ingests items in order. Per-item problems are reported in
	// BatchResult.Failures; only an empty batch or an interrupted run returns an error.
	AddQuestions(ctx context.Context, items []CandidateQuestion) (*BatchResult, error)
	// RetrieveByCompanies resolves each entry as a company id or name and
	// returns those companies with all of their questions.
	RetrieveByCompanies(ctx context.Context, companies []string) (*CompanyQuestions, error)
	CompanyNames(ctx context.Context) ([]string, error)
}

type FailureKind string

const (
	FailureValidation        FailureKind = "validation"
	FailureCompanyResolution FailureKind = "company_resolution"
	FailureDuplicate         FailureKind = "duplicate"
	FailurePersistence       FailureKind = "persistence"
)

// Failure describes why the item at Index was not created.
type Failure struct {
	Index              int         `json:"index"`
	Question           string      `json:"question"`
	Kind               FailureKind `json:"kind"`
	Message            string      `json:"message"`
	ExistingQuestionID string      `json:"existingQuestionId,omitempty"`
	Err                error       `json:"-"`
}

type BatchResult struct {
	Created  []entities.Question `json:"data"`
	Failures []Failure           `json:"failedQuestions"`
}

// Partial reports whether any item failed.
func (r *BatchResult) Partial() bool { return len(r.Failures) > 0 }

// QuestionView is a question with its companies expanded.
type QuestionView struct {
	entities.Question
	Companies []entities.CompanySummary `json:"company"`
}

type CompanyQuestions struct {
	Companies []entities.CompanySummary `json:"companies"`
	Questions []QuestionView            `json:"data"`
}
