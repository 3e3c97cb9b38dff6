package notify

import (
	"context"

	"pawmarket/internal/domain"

	"go.uber.org/zap"
)

// Notifier is the outbound email side channel. Delivery itself is an
// external collaborator; callers only depend on this port. Workflow
// writes that trigger a notification roll back when it returns an error.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
	SendSellerStatusChanged(ctx context.Context, email string, status domain.SellerStatus, notes string) error
}

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a Notifier that records notifications in the
// application log instead of delivering them. Used in development and
// as the default until a mail provider is wired.
func NewLogNotifier(logger *zap.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) SendOTP(ctx context.Context, email, code string) error {
	n.logger.Info("OTP notification",
		zap.String("email", email),
		zap.String("code", code),
	)
	return nil
}

func (n *logNotifier) SendSellerStatusChanged(ctx context.Context, email string, status domain.SellerStatus, notes string) error {
	n.logger.Info("Seller status notification",
		zap.String("email", email),
		zap.String("status", string(status)),
		zap.String("notes", notes),
	)
	return nil
}
