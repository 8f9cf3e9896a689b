package entities

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryReasoning Category = "reasoning"
	CategoryAptitude  Category = "aptitude"
	CategoryDSA       Category = "dsa"
	CategoryCoreCS    Category = "corecs"
)

// Categories lists the accepted question categories in display order.
var Categories = []Category{CategoryReasoning, CategoryAptitude, CategoryDSA, CategoryCoreCS}

// ParseCategory matches s against Categories ignoring case and surrounding space.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

type Question struct {
	ID            string    `gorm:"primaryKey;size:36" json:"_id"`
	Text          string    `gorm:"column:question;uniqueIndex;not null" json:"question"`
	Options       []string  `gorm:"serializer:json" json:"options"`
	CorrectAnswer string    `gorm:"not null" json:"correctAnswer"`
	HasOptions    bool      `json:"hasOptions"`
	Category      Category  `gorm:"index;not null" json:"category"`
	Subcategory   string    `json:"subcategory,omitempty"`
	Explanation   string    `json:"explanation"`
	CompanyRefs   []string  `gorm:"serializer:json" json:"company"`
	Images        []string  `gorm:"serializer:json" json:"question_image"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
