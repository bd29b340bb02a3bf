package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/nmoreira/portfolio-backend/models"
)

func strPtr(s string) *string { return &s }

// Seed inserts example projects when the table is empty. Used by the
// SEED_DB one-shot mode; a populated table is left untouched.
func Seed(ctx context.Context, d Database) error {
	var count int64
	if err := d.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("existing", count).Msg("Database already seeded, skipping")
		return nil
	}

	examples := []models.Project{
		{
			Title:            "Portfolio Website",
			Slug:             "portfolio-website",
			ShortDescription: strPtr("Personal portfolio built with React and TypeScript"),
			TechStack:        datatypes.NewJSONSlice([]string{"React", "TypeScript", "Tailwind CSS", "Vite"}),
			ProjectType:      models.TypeWeb,
			Status:           models.StatusActive,
			Featured:         true,
			GithubURL:        strPtr("https://github.com/username/portfolio"),
			DemoURL:          strPtr("https://portfolio.example.com"),
		},
		{
			Title:            "Data Pipeline ETL",
			Slug:             "data-pipeline-etl",
			ShortDescription: strPtr("Scalable ETL pipeline for processing large datasets"),
			TechStack:        datatypes.NewJSONSlice([]string{"Python", "Airflow", "Spark", "PostgreSQL"}),
			ProjectType:      models.TypeDataEngineering,
			Status:           models.StatusActive,
			Featured:         true,
			GithubURL:        strPtr("https://github.com/username/data-pipeline"),
		},
		{
			Title:            "Invoice Automation Bot",
			Slug:             "invoice-automation-bot",
			ShortDescription: strPtr("Automated invoice ingestion and reconciliation"),
			TechStack:        datatypes.NewJSONSlice([]string{"Go", "PostgreSQL"}),
			ProjectType:      models.TypeAutomation,
			Status:           models.StatusDraft,
		},
	}

	return d.Transaction(ctx, func(tx Database) error {
		for i := range examples {
			if err := tx.ProjectRepo().Add(ctx, &examples[i]); err != nil {
				return err
			}
		}
		log.Info().Int("count", len(examples)).Msg("Seeded example projects")
		return nil
	})
}
