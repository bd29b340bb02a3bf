package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nmoreira/portfolio-backend/config"
	"github.com/nmoreira/portfolio-backend/database"
	"github.com/nmoreira/portfolio-backend/models"
	"github.com/nmoreira/portfolio-backend/schemas"
)

func newTestRouter(t *testing.T) (*chi.Mux, database.Database) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Project{}))

	cfg := &config.Config{
		ServiceName:    "Portfolio API",
		APIPrefix:      "/api/v1",
		AllowedOrigins: []string{"*"},
	}
	d := database.New(db)
	return newRouter(d, withConfig(cfg), withStartupTime(time.Now())), d
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeProject(t *testing.T, rec *httptest.ResponseRecorder) schemas.ProjectPublic {
	t.Helper()
	var project schemas.ProjectPublic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))
	return project
}

func createProjectPayload(title string) map[string]any {
	return map[string]any{
		"title":        title,
		"project_type": "web",
		"tech_stack":   []string{"Go", "PostgreSQL"},
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "Portfolio API", body["service"])
}

func TestCreateProject(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("create with derived slug and defaults", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", createProjectPayload("Data Pipeline v2.0!"))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		project := decodeProject(t, rec)
		assert.NotZero(t, project.ID)
		assert.Equal(t, "data-pipeline-v20", project.Slug)
		assert.Equal(t, "web", project.ProjectType)
		assert.Equal(t, "active", project.Status)
		assert.False(t, project.Featured)
		assert.True(t, project.CreatedAt.Equal(project.UpdatedAt))
	})

	t.Run("create with explicit slug override", func(t *testing.T) {
		payload := createProjectPayload("Another One")
		payload["slug"] = "Custom Slug Here!"
		rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", payload)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "custom-slug-here", decodeProject(t, rec).Slug)
	})

	t.Run("duplicate slug rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", createProjectPayload("My Project"))
		require.Equal(t, http.StatusCreated, rec.Code)

		// normalizes to the same slug
		rec = doJSON(t, router, http.MethodPost, "/api/v1/projects", createProjectPayload("  My -- Project!! "))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "my-project")
	})

	t.Run("invalid project type rejected", func(t *testing.T) {
		payload := createProjectPayload("Bad Type")
		payload["project_type"] = "blockchain"
		rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", payload)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "project_type")
	})

	t.Run("malformed url rejected", func(t *testing.T) {
		payload := createProjectPayload("Bad URL")
		payload["github_url"] = "not a url"
		rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", payload)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("title with no alphanumeric content rejected", func(t *testing.T) {
		payload := createProjectPayload("!!! ???")
		rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", payload)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetProject(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", createProjectPayload("Fetch Me"))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeProject(t, rec)

	t.Run("existing project", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", created.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		project := decodeProject(t, rec)
		assert.Equal(t, created.ID, project.ID)
		assert.Equal(t, "Fetch Me", project.Title)
		assert.True(t, project.CreatedAt.Equal(project.UpdatedAt))
	})

	t.Run("missing project", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/projects/99999", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/projects/abc", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListProjects(t *testing.T) {
	router, d := newTestRouter(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []models.Project{
		{Title: "Oldest", Slug: "oldest", ProjectType: models.TypeWeb, Status: models.StatusActive,
			TechStack: datatypes.NewJSONSlice([]string{"Go"}), CreatedAt: base, UpdatedAt: base},
		{Title: "Middle", Slug: "middle", ProjectType: models.TypeMLAI, Status: models.StatusDraft, Featured: true,
			TechStack: datatypes.NewJSONSlice([]string{"Python"}), CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)},
		{Title: "Newest", Slug: "newest", ProjectType: models.TypeWeb, Status: models.StatusActive, Featured: true,
			TechStack: datatypes.NewJSONSlice([]string{"Go"}), CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(2 * time.Hour)},
	}
	for i := range seed {
		require.NoError(t, d.ProjectRepo().Add(context.Background(), &seed[i]))
	}

	decodeList := func(rec *httptest.ResponseRecorder) schemas.ProjectList {
		var list schemas.ProjectList
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		return list
	}

	t.Run("default page is ordered most recent first", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/projects", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		list := decodeList(rec)
		assert.EqualValues(t, 3, list.Total)
		assert.Equal(t, 0, list.Skip)
		assert.Equal(t, 100, list.Limit)
		require.Len(t, list.Projects, 3)
		assert.Equal(t, "Newest", list.Projects[0].Title)
		assert.Equal(t, "Oldest", list.Projects[2].Title)
	})

	t.Run("limit one returns the most recent", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/projects?limit=1&skip=0", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		list := decodeList(rec)
		assert.EqualValues(t, 3, list.Total)
		require.Len(t, list.Projects, 1)
		assert.Equal(t, "Newest", list.Projects[0].Title)
	})

	t.Run("filters are ANDed", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/projects?project_type=web&status=active", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		list := decodeList(rec)
		assert.EqualValues(t, 2, list.Total)
		for _, p := range list.Projects {
			assert.Equal(t, "web", p.ProjectType)
			assert.Equal(t, "active", p.Status)
		}
	})

	t.Run("featured filter excludes non-featured", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/projects?featured=true", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		list := decodeList(rec)
		assert.EqualValues(t, 2, list.Total)
		for _, p := range list.Projects {
			assert.True(t, p.Featured)
		}
	})

	t.Run("limit above cap rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/projects?limit=101", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("negative skip rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/projects?skip=-1", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown filter value rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/projects?project_type=blockchain", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("non-integer limit rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/projects?limit=lots", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestUpdateProjectFull(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", map[string]any{
		"title":             "Replace Me",
		"project_type":      "web",
		"short_description": "before",
		"tech_stack":        []string{"Go"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeProject(t, rec)
	require.Equal(t, "replace-me", created.Slug)

	t.Run("title change keeps the slug", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/projects/%d", created.ID), map[string]any{
			"title":        "Totally New Title",
			"project_type": "saas",
			"tech_stack":   []string{"Go", "Terraform"},
			"featured":     true,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		project := decodeProject(t, rec)
		assert.Equal(t, "Totally New Title", project.Title)
		assert.Equal(t, "replace-me", project.Slug)
		assert.Equal(t, "saas", project.ProjectType)
		assert.True(t, project.Featured)
		// full replacement: omitted optional fields are cleared
		assert.Nil(t, project.ShortDescription)
	})

	t.Run("explicit slug changes it", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/projects/%d", created.ID), map[string]any{
			"title":        "Totally New Title",
			"slug":         "Shiny Slug",
			"project_type": "saas",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "shiny-slug", decodeProject(t, rec).Slug)
	})

	t.Run("slug conflict rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", createProjectPayload("Taken Slug"))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/projects/%d", created.ID), map[string]any{
			"title":        "Whatever",
			"slug":         "taken-slug",
			"project_type": "web",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing project", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/api/v1/projects/99999", map[string]any{
			"title":        "Ghost",
			"project_type": "web",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/projects/%d", created.ID), map[string]any{
			"title":        "",
			"project_type": "web",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestUpdateProjectPartial(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", map[string]any{
		"title":             "Patch Me",
		"project_type":      "ml_ai",
		"short_description": "keep this",
		"tech_stack":        []string{"Python"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeProject(t, rec)

	t.Run("only supplied fields change", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond)

		rec := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/projects/%d", created.ID), map[string]any{
			"featured": true,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		project := decodeProject(t, rec)
		assert.True(t, project.Featured)
		assert.Equal(t, "Patch Me", project.Title)
		assert.Equal(t, "patch-me", project.Slug)
		assert.Equal(t, "ml_ai", project.ProjectType)
		require.NotNil(t, project.ShortDescription)
		assert.Equal(t, "keep this", *project.ShortDescription)
		assert.True(t, project.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, project.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("title patch does not regenerate slug", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/projects/%d", created.ID), map[string]any{
			"title": "A Whole New Name",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		project := decodeProject(t, rec)
		assert.Equal(t, "A Whole New Name", project.Title)
		assert.Equal(t, "patch-me", project.Slug)
	})

	t.Run("slug patch with conflict rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", createProjectPayload("Occupied"))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/projects/%d", created.ID), map[string]any{
			"slug": "occupied",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/projects/%d", created.ID), map[string]any{
			"status": "paused",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("missing project", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPatch, "/api/v1/projects/99999", map[string]any{
			"featured": true,
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteProject(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", createProjectPayload("Delete Me"))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeProject(t, rec)
	path := fmt.Sprintf("/api/v1/projects/%d", created.ID)

	rec = doJSON(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// a second delete reports not-found, not a silent no-op
	rec = doJSON(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
