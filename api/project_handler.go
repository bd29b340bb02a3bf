package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/nmoreira/portfolio-backend/database"
	"github.com/nmoreira/portfolio-backend/errs"
	"github.com/nmoreira/portfolio-backend/models"
	"github.com/nmoreira/portfolio-backend/schemas"
	"github.com/nmoreira/portfolio-backend/slug"
)

const defaultListLimit = 100

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	database  database.Database
}

func newProjectHandler(db database.Database) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		database:  db,
	}
}

// parseProjectID extracts and parses the projectID URL parameter.
func parseProjectID(r *http.Request) (int, error) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return 0, errs.NewBadRequestError("missing projectID")
	}
	projectID, err := strconv.Atoi(projectIDStr)
	if err != nil || projectID < 1 {
		return 0, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}

// parseListQuery parses and validates the list endpoint's query parameters.
func parseListQuery(r *http.Request) (schemas.ProjectListQuery, error) {
	query := schemas.ProjectListQuery{Skip: 0, Limit: defaultListLimit}
	params := r.URL.Query()

	if raw := params.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return query, errs.NewInvalidFieldError("skip", "must be an integer")
		}
		query.Skip = skip
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return query, errs.NewInvalidFieldError("limit", "must be an integer")
		}
		query.Limit = limit
	}
	if raw := params.Get("project_type"); raw != "" {
		query.ProjectType = &raw
	}
	if raw := params.Get("status"); raw != "" {
		query.Status = &raw
	}
	if raw := params.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return query, errs.NewInvalidFieldError("featured", "must be a boolean")
		}
		query.Featured = &featured
	}

	if err := query.Validate(); err != nil {
		return query, errs.NewValidationFailed(err)
	}
	return query, nil
}

// resolveSlug normalizes an explicit slug override, or derives the slug from
// the title when no override is supplied. An empty result means the title has
// no alphanumeric content and is rejected as a validation failure.
func resolveSlug(title, override string) (string, error) {
	s := strings.TrimSpace(override)
	if s == "" {
		s = slug.Generate(title)
	} else {
		s = slug.Generate(s)
	}
	if s == "" {
		return "", errs.NewInvalidFieldError("title", "has no alphanumeric content to derive a slug from")
	}
	return s, nil
}

// listProjects returns one page of projects with optional filters
// @Summary List projects
// @Description Lists projects ordered by creation time descending, with optional project_type/status/featured filters and skip/limit pagination
// @Tags Projects
// @Accept json
// @Produce json
// @Param skip query int false "Number of records to skip" default(0)
// @Param limit query int false "Maximum number of records to return" default(100) maximum(100)
// @Param project_type query string false "Filter by project type"
// @Param status query string false "Filter by status"
// @Param featured query bool false "Filter by featured flag"
// @Success 200 {object} schemas.ProjectList "Page of projects"
// @Failure 422 {object} map[string]any "Validation error"
// @Router /projects [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseListQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.ProjectFilter{
			ProjectType: query.ProjectType,
			Status:      query.Status,
			Featured:    query.Featured,
		}
		projects, total, err := h.database.ProjectRepo().FindPage(r.Context(), filter, query.Skip, query.Limit)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list", "projects", err))
			return
		}

		h.responder.WriteJSON(w, schemas.NewProjectList(projects, total, query.Skip, query.Limit))
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Description Retrieves a single project by its numeric ID
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} schemas.ProjectPublic "Project details"
// @Failure 400 {object} map[string]any "Bad Request - invalid projectID"
// @Failure 404 {object} map[string]any "Not Found"
// @Router /projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.database.ProjectRepo().FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project", projectID))
			return
		}

		h.responder.WriteJSON(w, schemas.NewProjectPublic(*project))
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a project; the slug is derived from the title when not supplied and must be unique
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body schemas.ProjectCreate true "Project data"
// @Success 201 {object} schemas.ProjectPublic "Created project"
// @Failure 400 {object} map[string]any "Duplicate slug"
// @Failure 422 {object} map[string]any "Validation error"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input schemas.ProjectCreate
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewValidationFailed(err))
			return
		}
		input.ApplyDefaults()

		projectSlug, err := resolveSlug(input.Title, input.Slug)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{
			Title:            input.Title,
			Slug:             projectSlug,
			ShortDescription: input.ShortDescription,
			LongDescription:  input.LongDescription,
			TechStack:        datatypes.NewJSONSlice(input.TechStack),
			ProjectType:      input.ProjectType,
			Status:           input.Status,
			GithubURL:        input.GithubURL,
			DemoURL:          input.DemoURL,
			ImageURL:         input.ImageURL,
			Featured:         input.Featured,
		}

		err = h.database.Transaction(r.Context(), func(tx database.Database) error {
			existing, err := tx.ProjectRepo().FindBySlug(r.Context(), projectSlug)
			if err != nil {
				return errs.NewDatabaseError("find", "project", err)
			}
			if existing != nil {
				return errs.NewDuplicateSlug(projectSlug)
			}
			if err := tx.ProjectRepo().Add(r.Context(), &project); err != nil {
				if database.IsDuplicateKey(err) {
					return errs.NewDuplicateSlug(projectSlug)
				}
				return errs.NewDatabaseError("create", "project", err)
			}
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, schemas.NewProjectPublic(project))
	}
}

// updateProjectFull replaces every field of an existing project
// @Summary Replace project
// @Description Full update; all provided fields overwrite existing values. The slug only changes when explicitly supplied
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Param project body schemas.ProjectCreate true "Complete project data"
// @Success 200 {object} schemas.ProjectPublic "Updated project"
// @Failure 400 {object} map[string]any "Duplicate slug"
// @Failure 404 {object} map[string]any "Not Found"
// @Failure 422 {object} map[string]any "Validation error"
// @Router /projects/{projectID} [put]
func (h projectHandler) updateProjectFull() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input schemas.ProjectCreate
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewValidationFailed(err))
			return
		}
		input.ApplyDefaults()

		var updated models.Project
		err = h.database.Transaction(r.Context(), func(tx database.Database) error {
			project, err := tx.ProjectRepo().FindByID(r.Context(), projectID)
			if err != nil {
				return errs.NewDatabaseError("find", "project", err)
			}
			if project == nil {
				return errs.NewNotFound("project", projectID)
			}

			// The slug is pinned unless the payload supplies one; a title
			// change alone never regenerates it.
			if override := strings.TrimSpace(input.Slug); override != "" {
				newSlug := slug.Generate(override)
				if newSlug == "" {
					return errs.NewInvalidFieldError("slug", "has no alphanumeric content")
				}
				if newSlug != project.Slug {
					if err := ensureSlugFree(r, tx, newSlug, projectID); err != nil {
						return err
					}
				}
				project.Slug = newSlug
			}

			project.Title = input.Title
			project.ShortDescription = input.ShortDescription
			project.LongDescription = input.LongDescription
			project.TechStack = datatypes.NewJSONSlice(input.TechStack)
			project.ProjectType = input.ProjectType
			project.Status = input.Status
			project.GithubURL = input.GithubURL
			project.DemoURL = input.DemoURL
			project.ImageURL = input.ImageURL
			project.Featured = input.Featured

			if err := tx.ProjectRepo().Save(r.Context(), project); err != nil {
				if database.IsDuplicateKey(err) {
					return errs.NewDuplicateSlug(project.Slug)
				}
				return errs.NewDatabaseError("update", "project", err)
			}
			updated = *project
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, schemas.NewProjectPublic(updated))
	}
}

// updateProjectPartial applies only the supplied fields to an existing project
// @Summary Patch project
// @Description Partial update; absent fields leave existing values untouched
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Param project body schemas.ProjectUpdate true "Partial project data"
// @Success 200 {object} schemas.ProjectPublic "Updated project"
// @Failure 400 {object} map[string]any "Duplicate slug"
// @Failure 404 {object} map[string]any "Not Found"
// @Failure 422 {object} map[string]any "Validation error"
// @Router /projects/{projectID} [patch]
func (h projectHandler) updateProjectPartial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input schemas.ProjectUpdate
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewValidationFailed(err))
			return
		}

		var updated models.Project
		err = h.database.Transaction(r.Context(), func(tx database.Database) error {
			project, err := tx.ProjectRepo().FindByID(r.Context(), projectID)
			if err != nil {
				return errs.NewDatabaseError("find", "project", err)
			}
			if project == nil {
				return errs.NewNotFound("project", projectID)
			}

			if input.Slug != nil {
				if override := strings.TrimSpace(*input.Slug); override != "" {
					newSlug := slug.Generate(override)
					if newSlug == "" {
						return errs.NewInvalidFieldError("slug", "has no alphanumeric content")
					}
					if newSlug != project.Slug {
						if err := ensureSlugFree(r, tx, newSlug, projectID); err != nil {
							return err
						}
					}
					project.Slug = newSlug
				}
			}

			if input.Title != nil {
				project.Title = *input.Title
			}
			if input.ShortDescription != nil {
				project.ShortDescription = input.ShortDescription
			}
			if input.LongDescription != nil {
				project.LongDescription = input.LongDescription
			}
			if input.TechStack != nil {
				project.TechStack = datatypes.NewJSONSlice(*input.TechStack)
			}
			if input.ProjectType != nil {
				project.ProjectType = *input.ProjectType
			}
			if input.Status != nil {
				project.Status = *input.Status
			}
			if input.GithubURL != nil {
				project.GithubURL = input.GithubURL
			}
			if input.DemoURL != nil {
				project.DemoURL = input.DemoURL
			}
			if input.ImageURL != nil {
				project.ImageURL = input.ImageURL
			}
			if input.Featured != nil {
				project.Featured = *input.Featured
			}

			if err := tx.ProjectRepo().Save(r.Context(), project); err != nil {
				if database.IsDuplicateKey(err) {
					return errs.NewDuplicateSlug(project.Slug)
				}
				return errs.NewDatabaseError("update", "project", err)
			}
			updated = *project
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, schemas.NewProjectPublic(updated))
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Description Permanently removes a project; a second delete of the same id reports not-found
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]any "Not Found"
// @Router /projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err = h.database.Transaction(r.Context(), func(tx database.Database) error {
			project, err := tx.ProjectRepo().FindByID(r.Context(), projectID)
			if err != nil {
				return errs.NewDatabaseError("find", "project", err)
			}
			if project == nil {
				return errs.NewNotFound("project", projectID)
			}
			if err := tx.ProjectRepo().Delete(r.Context(), projectID); err != nil {
				return errs.NewDatabaseError("delete", "project", err)
			}
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ensureSlugFree reports a duplicate-slug error when another project already
// owns the slug.
func ensureSlugFree(r *http.Request, tx database.Database, newSlug string, projectID int) error {
	existing, err := tx.ProjectRepo().FindBySlug(r.Context(), newSlug)
	if err != nil {
		return errs.NewDatabaseError("find", "project", err)
	}
	if existing != nil && existing.ID != projectID {
		return errs.NewDuplicateSlug(newSlug)
	}
	return nil
}
