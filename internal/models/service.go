package models

import (
	"encoding/json"
	"time"
)

// Service is a catalog entry. The primary key is a stable slug ("swedish",
// "deeptissue", ...) chosen by the admin, not a generated id, so upserts from
// the dashboard are keyed naturally.
type Service struct {
	ID string `gorm:"size:50;primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Duration    string `gorm:"size:20" json:"duration"`
	Price       string `gorm:"size:20" json:"price"`
	Icon        string `gorm:"size:10" json:"icon"`
	Description string `gorm:"size:255" json:"description"`

	// JSON-encoded ordered list of benefit strings.
	BenefitsRaw string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) Benefits() []string {
	if s.BenefitsRaw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s.BenefitsRaw), &out); err != nil {
		return nil
	}
	return out
}

func (s *Service) SetBenefits(benefits []string) {
	if len(benefits) == 0 {
		s.BenefitsRaw = ""
		return
	}
	if b, err := json.Marshal(benefits); err == nil {
		s.BenefitsRaw = string(b)
	}
}

// MarshalJSON inlines the decoded benefits list.
func (s Service) MarshalJSON() ([]byte, error) {
	benefits := s.Benefits()
	if benefits == nil {
		benefits = []string{}
	}
	type alias Service
	return json.Marshal(struct {
		alias
		Benefits []string `json:"benefits"`
	}{
		alias:    alias(s),
		Benefits: benefits,
	})
}
