package entities

import "time"

type Company struct {
	ID   string `gorm:"primaryKey;size:36" json:"_id"`
	Name string `gorm:"not null" json:"company"`
	// NameKey is the case-folded Name; lookups and uniqueness go through it.
	NameKey      string    `gorm:"uniqueIndex;not null" json:"-"`
	QuestionRefs []string  `gorm:"-" json:"questions"`
	ImageURL     string    `json:"company_img,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CompanyQuestion is one back-reference from a company to a question.
// The composite key makes inserts a set-union.
type CompanyQuestion struct {
	CompanyID  string `gorm:"primaryKey;size:36"`
	QuestionID string `gorm:"primaryKey;size:36;index"`
	CreatedAt  time.Time
}

type CompanySummary struct {
	ID            string `json:"_id"`
	Name          string `json:"company"`
	ImageURL      string `json:"company_img,omitempty"`
	QuestionCount int    `json:"questionCount"`
}

func (c *Company) Summary() CompanySummary {
	return CompanySummary{ID: c.ID, Name: c.Name, ImageURL: c.ImageURL, QuestionCount: len(c.QuestionRefs)}
}
