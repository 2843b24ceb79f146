// Package seed inserts the default data the app expects on first run.
package seed

import (
	"context"

	"github.com/hassy/readcycle/internal/app/models"
	"github.com/hassy/readcycle/internal/app/repositories"
	"github.com/hassy/readcycle/internal/pkg/logger"
)

// Run inserts the global welcome announcement unless it already
// exists. Seeding failures are logged but never block startup.
func Run(ctx context.Context, repos *repositories.Repositories) {
	welcome := &models.Notification{
		Type:     models.NotificationTypeAnnouncement,
		Title:    "Welcome to ReadCycle",
		Body:     "Buy, swap and rent textbooks with students at your university.",
		Priority: models.PriorityNormal,
		ForAll:   true,
	}
	if err := repos.Notification.CreateAnnouncementIfAbsent(ctx, welcome); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed welcome announcement")
		return
	}
	logger.Debug().Msg("Seed data ensured")
}
