// Package notify sends staff e-mail about orders and admin accounts.
package notify

import (
	"context"

	"github.com/yoockh/bookwise/internal/models"
)

type Notifier interface {
	// Enabled reports whether messages are actually delivered.
	Enabled() bool
	OrderPlaced(ctx context.Context, roomID string, o models.Order) error
	AdminVerification(ctx context.Context, a models.Admin, verifyURL string) error
	AdminApproved(ctx context.Context, a models.Admin) error
}
