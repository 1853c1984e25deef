package notify

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/models"
)

// Notifier delivers fire-and-forget notifications. Implementations must not
// fail the caller: delivery problems are logged and swallowed so they can
// never roll back a committed scheduling change.
type Notifier interface {
	Notify(n *models.Notification)
}

// InApp stores notifications as rows read back by the web client.
type InApp struct {
	DB *gorm.DB
}

// NewInApp creates an in-app notifier backed by the database.
func NewInApp(db *gorm.DB) *InApp {
	return &InApp{DB: db}
}

// Notify persists the notification, logging and suppressing any failure.
func (s *InApp) Notify(n *models.Notification) {
	if err := s.DB.Create(n).Error; err != nil {
		log.Error().
			Err(err).
			Str("recipient", n.RecipientID).
			Str("kind", string(n.Kind)).
			Msg("failed to store notification")
	}
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(*models.Notification) {}
