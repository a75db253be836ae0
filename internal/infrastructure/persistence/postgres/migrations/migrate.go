package migrations

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/event"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/review"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/rsvp"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/task"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/user"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/venue"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/infrastructure/persistence/postgres/connection"
)

// venueExclusionSQL installs a store-level guard against double booking:
// two upcoming venue-bound events may not hold overlapping time ranges at
// the same venue. The application-level conflict check is advisory; this
// constraint closes the check-then-insert race between concurrent writers.
const venueExclusionSQL = `
DO $$
BEGIN
    ALTER TABLE events ADD CONSTRAINT events_venue_no_overlap
        EXCLUDE USING gist (venue_id WITH =, tstzrange(start_time, end_time) WITH &&)
        WHERE (location_type = 'venue' AND status = 'upcoming');
EXCEPTION
    WHEN duplicate_table THEN NULL;
    WHEN duplicate_object THEN NULL;
END $$;
`

// AutoMigrate runs database migrations for all models.
func AutoMigrate(db *connection.Database, logger *zap.Logger) error {
	logger.Info("Starting automatic database migration...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist;`).Error; err != nil {
		return fmt.Errorf("failed to create btree_gist extension: %w", err)
	}

	// Parents before children so foreign keys resolve.
	models := []interface{}{
		&user.User{},
		&venue.Venue{},
		&event.Event{},
		&rsvp.RSVP{},
		&review.Review{},
		&task.Task{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	if err := db.Exec(venueExclusionSQL).Error; err != nil {
		return fmt.Errorf("failed to create venue exclusion constraint: %w", err)
	}

	logger.Info("Database migration completed")
	return nil
}
