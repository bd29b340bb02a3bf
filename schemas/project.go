package schemas

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/nmoreira/portfolio-backend/models"
)

func enumValues(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

var (
	projectTypeRule = validation.In(enumValues(models.ProjectTypes)...).
			Error("must be one of data_engineering, ml_ai, web, automation, saas")
	statusRule = validation.In(enumValues(models.Statuses)...).
			Error("must be one of active, archived, draft")
)

// ProjectCreate is the payload for POST /projects and, with full-replacement
// semantics, for PUT /projects/{id}. Slug is an optional override; when
// empty, it is derived from the title.
type ProjectCreate struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	ShortDescription *string  `json:"short_description"`
	LongDescription  *string  `json:"long_description"`
	TechStack        []string `json:"tech_stack"`
	ProjectType      string   `json:"project_type"`
	Status           string   `json:"status"`
	GithubURL        *string  `json:"github_url"`
	DemoURL          *string  `json:"demo_url"`
	ImageURL         *string  `json:"image_url"`
	Featured         bool     `json:"featured"`
}

// Validate enforces the field constraints before any persistence access.
func (p ProjectCreate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Slug, validation.Length(0, 200)),
		validation.Field(&p.ShortDescription, validation.Length(0, 500)),
		validation.Field(&p.TechStack, validation.Each(validation.Required, validation.Length(1, 100))),
		validation.Field(&p.ProjectType, validation.Required, projectTypeRule),
		validation.Field(&p.Status, statusRule),
		validation.Field(&p.GithubURL, validation.Length(0, 500), is.URL),
		validation.Field(&p.DemoURL, validation.Length(0, 500), is.URL),
		validation.Field(&p.ImageURL, validation.Length(0, 500), is.URL),
	)
}

// ApplyDefaults fills the documented defaults for omitted fields.
func (p *ProjectCreate) ApplyDefaults() {
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
}

// ProjectUpdate is the payload for PATCH /projects/{id}. Every field is
// optional; only supplied fields are applied.
type ProjectUpdate struct {
	Title            *string   `json:"title"`
	Slug             *string   `json:"slug"`
	ShortDescription *string   `json:"short_description"`
	LongDescription  *string   `json:"long_description"`
	TechStack        *[]string `json:"tech_stack"`
	ProjectType      *string   `json:"project_type"`
	Status           *string   `json:"status"`
	GithubURL        *string   `json:"github_url"`
	DemoURL          *string   `json:"demo_url"`
	ImageURL         *string   `json:"image_url"`
	Featured         *bool     `json:"featured"`
}

func (p ProjectUpdate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&p.Slug, validation.Length(0, 200)),
		validation.Field(&p.ShortDescription, validation.Length(0, 500)),
		validation.Field(&p.ProjectType, projectTypeRule),
		validation.Field(&p.Status, statusRule),
		validation.Field(&p.GithubURL, validation.Length(0, 500), is.URL),
		validation.Field(&p.DemoURL, validation.Length(0, 500), is.URL),
		validation.Field(&p.ImageURL, validation.Length(0, 500), is.URL),
	)
}

// ProjectListQuery carries the parsed query parameters of the list endpoint.
type ProjectListQuery struct {
	Skip        int
	Limit       int
	ProjectType *string
	Status      *string
	Featured    *bool
}

func (q ProjectListQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Skip, validation.Min(0)),
		validation.Field(&q.Limit, validation.Required.Error("must be at least 1"), validation.Min(1), validation.Max(100)),
		validation.Field(&q.ProjectType, projectTypeRule),
		validation.Field(&q.Status, statusRule),
	)
}

// ProjectPublic is the full entity view returned to API consumers.
type ProjectPublic struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	ShortDescription *string   `json:"short_description"`
	LongDescription  *string   `json:"long_description"`
	TechStack        []string  `json:"tech_stack"`
	ProjectType      string    `json:"project_type"`
	Status           string    `json:"status"`
	GithubURL        *string   `json:"github_url"`
	DemoURL          *string   `json:"demo_url"`
	ImageURL         *string   `json:"image_url"`
	Featured         bool      `json:"featured"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewProjectPublic maps the stored entity to its public view.
func NewProjectPublic(p models.Project) ProjectPublic {
	techStack := []string(p.TechStack)
	if techStack == nil {
		techStack = []string{}
	}
	return ProjectPublic{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		TechStack:        techStack,
		ProjectType:      p.ProjectType,
		Status:           p.Status,
		GithubURL:        p.GithubURL,
		DemoURL:          p.DemoURL,
		ImageURL:         p.ImageURL,
		Featured:         p.Featured,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ProjectList is one page of projects plus pagination metadata.
type ProjectList struct {
	Total    int64           `json:"total"`
	Skip     int             `json:"skip"`
	Limit    int             `json:"limit"`
	Projects []ProjectPublic `json:"projects"`
}

// NewProjectList maps a page of entities to the list view.
func NewProjectList(projects []models.Project, total int64, skip, limit int) ProjectList {
	items := make([]ProjectPublic, 0, len(projects))
	for _, p := range projects {
		items = append(items, NewProjectPublic(p))
	}
	return ProjectList{
		Total:    total,
		Skip:     skip,
		Limit:    limit,
		Projects: items,
	}
}
