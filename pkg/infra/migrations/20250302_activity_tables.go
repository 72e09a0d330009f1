package migrations

import (
	"github.com/personacore/sentinel/pkg/infra/database"
	"gorm.io/gorm"
)

// Activity tables the signal collector reads and the manual-signal paths
// write: user_messages, interaction_ratings, user_blocks. user_messages is
// owned by the chat service; the engine only needs the read shape.
func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250302_activity_tables",
		Name: "Create user_messages, interaction_ratings and user_blocks tables",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.user_messages (
					id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id         UUID NOT NULL,
					persona_id      UUID,
					conversation_id UUID,
					content         TEXT NOT NULL DEFAULT '',
					created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_user_messages_user_created
				ON public.user_messages (user_id, created_at DESC);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.interaction_ratings (
					id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					rater_id        UUID NOT NULL,
					rated_user_id   UUID NOT NULL,
					persona_id      UUID,
					conversation_id UUID,
					safety_rating   INTEGER NOT NULL,
					is_harassment   BOOLEAN NOT NULL DEFAULT FALSE,
					reports_threats BOOLEAN NOT NULL DEFAULT FALSE,
					comment         TEXT NOT NULL DEFAULT '',
					created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_interaction_ratings_rated_created
				ON public.interaction_ratings (rated_user_id, created_at DESC);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.user_blocks (
					id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					creator_id UUID NOT NULL,
					user_id    UUID NOT NULL,
					persona_id UUID,
					is_blocked BOOLEAN NOT NULL DEFAULT TRUE,
					reason     TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE UNIQUE INDEX IF NOT EXISTS idx_user_blocks_scope
				ON public.user_blocks (creator_id, user_id, COALESCE(persona_id, '00000000-0000-0000-0000-000000000000'::uuid));
			`).Error
		},

		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP TABLE IF EXISTS public.user_blocks;`).Error; err != nil {
				return err
			}
			if err := db.Exec(`DROP TABLE IF EXISTS public.interaction_ratings;`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP TABLE IF EXISTS public.user_messages;`).Error
		},
	})
}
