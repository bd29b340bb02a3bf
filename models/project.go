package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project type enumeration.
const (
	TypeDataEngineering = "data_engineering"
	TypeMLAI            = "ml_ai"
	TypeWeb             = "web"
	TypeAutomation      = "automation"
	TypeSaaS            = "saas"
)

// Project status enumeration.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
	StatusDraft    = "draft"
)

// ProjectTypes lists every valid project_type value.
var ProjectTypes = []string{TypeDataEngineering, TypeMLAI, TypeWeb, TypeAutomation, TypeSaaS}

// Statuses lists every valid status value.
var Statuses = []string{StatusActive, StatusArchived, StatusDraft}

// Project represents a portfolio project with metadata, descriptions,
// tech stack and URLs. The slug is unique across all projects and acts
// as the human-readable identifier.
type Project struct {
	ID               int                         `json:"id" gorm:"primaryKey;autoIncrement"`
	Title            string                      `json:"title" gorm:"type:varchar(200);not null;index"`
	Slug             string                      `json:"slug" gorm:"type:varchar(200);not null;uniqueIndex"`
	ShortDescription *string                     `json:"short_description,omitempty" gorm:"type:varchar(500)"`
	LongDescription  *string                     `json:"long_description,omitempty" gorm:"type:text"`
	TechStack        datatypes.JSONSlice[string] `json:"tech_stack"`
	ProjectType      string                      `json:"project_type" gorm:"type:varchar(50);not null"`
	Status           string                      `json:"status" gorm:"type:varchar(20);not null;default:active"`
	GithubURL        *string                     `json:"github_url,omitempty" gorm:"type:varchar(500)"`
	DemoURL          *string                     `json:"demo_url,omitempty" gorm:"type:varchar(500)"`
	ImageURL         *string                     `json:"image_url,omitempty" gorm:"type:varchar(500)"`
	Featured         bool                        `json:"featured" gorm:"not null;default:false"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

// TableName pins the table name expected by the external migration tooling.
func (Project) TableName() string {
	return "projects"
}

// IsValidProjectType reports whether t belongs to the project_type enumeration.
func IsValidProjectType(t string) bool {
	for _, v := range ProjectTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s belongs to the status enumeration.
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}
