package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nmoreira/portfolio-backend/models"
)

// ProjectFilter holds the optional list filters. Nil fields pass everything;
// set fields are ANDed together.
type ProjectFilter struct {
	ProjectType *string
	Status      *string
	Featured    *bool
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindPage returns one page of projects matching the filter, ordered by
// created_at descending, plus the total count of the filtered set.
func (r *ProjectRepo) FindPage(ctx context.Context, filter ProjectFilter, skip, limit int) ([]models.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{})

	if filter.ProjectType != nil {
		query = query.Where("project_type = ?", *filter.ProjectType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// FindByID returns the project with the given id, or nil when absent.
func (r *ProjectRepo) FindByID(ctx context.Context, id int) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlug returns the project with the given slug, or nil when absent.
// Used as the fast-path uniqueness check; the unique index on projects.slug
// remains the authoritative guard.
func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project. The store assigns id and both timestamps.
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Save writes back every field of an existing project and refreshes updated_at.
func (r *ProjectRepo) Save(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a project permanently. Hard delete, no tombstone.
func (r *ProjectRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}

// IsDuplicateKey reports whether err is a storage-level unique constraint
// violation, across the postgres and sqlite drivers.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
