package migrations

import (
	"github.com/personacore/sentinel/pkg/infra/database"
	"gorm.io/gorm"
)

// Core safety tables: safety_profiles, moderation_records, safety_incidents.
func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250301_initial_schema",
		Name: "Create safety_profiles, moderation_records and safety_incidents tables",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE EXTENSION IF NOT EXISTS pgcrypto;
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.safety_profiles (
					user_id              UUID PRIMARY KEY,
					overall_safety_score DOUBLE PRECISION NOT NULL DEFAULT 1.0,
					trust_level          TEXT NOT NULL DEFAULT 'new',
					total_interactions   INTEGER NOT NULL DEFAULT 0,
					flagged_interactions INTEGER NOT NULL DEFAULT 0,
					content_violations   INTEGER NOT NULL DEFAULT 0,
					is_restricted        BOOLEAN NOT NULL DEFAULT FALSE,
					restriction_reason   TEXT NOT NULL DEFAULT '',
					family_friendly_mode BOOLEAN NOT NULL DEFAULT FALSE,
					version              BIGINT NOT NULL DEFAULT 1,
					created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.moderation_records (
					id                 UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					content_id         TEXT NOT NULL,
					content_type       TEXT NOT NULL DEFAULT '',
					user_id            UUID,
					persona_id         UUID,
					content            TEXT NOT NULL DEFAULT '',
					status             TEXT NOT NULL,
					score              DOUBLE PRECISION NOT NULL DEFAULT 0,
					flagged_categories TEXT[],
					severity           TEXT NOT NULL DEFAULT 'low',
					age_rating         TEXT NOT NULL DEFAULT 'all_ages',
					compliance_flags   TEXT[],
					language           TEXT NOT NULL DEFAULT '',
					summary            TEXT NOT NULL DEFAULT '',
					action_required    BOOLEAN NOT NULL DEFAULT FALSE,
					metadata           JSONB,
					incident_id        UUID,
					created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_moderation_records_content
				ON public.moderation_records (content_id);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_moderation_records_user_created
				ON public.moderation_records (user_id, created_at DESC);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.safety_incidents (
					id                    UUID PRIMARY KEY,
					user_id               UUID NOT NULL,
					persona_id            UUID,
					content_moderation_id UUID,
					incident_type         TEXT NOT NULL,
					severity              TEXT NOT NULL,
					detection_method      TEXT NOT NULL DEFAULT 'pattern_analysis',
					confidence            DOUBLE PRECISION NOT NULL DEFAULT 0,
					description           TEXT NOT NULL DEFAULT '',
					evidence              JSONB,
					status                TEXT NOT NULL DEFAULT 'open',
					action_taken          TEXT NOT NULL DEFAULT '',
					created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_safety_incidents_user_created
				ON public.safety_incidents (user_id, created_at DESC);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP TABLE IF EXISTS public.safety_incidents;`).Error; err != nil {
				return err
			}
			if err := db.Exec(`DROP TABLE IF EXISTS public.moderation_records;`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP TABLE IF EXISTS public.safety_profiles;`).Error
		},
	})
}
