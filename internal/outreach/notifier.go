// internal/outreach/notifier.go
package outreach

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cedars-leadgen/internal/common/aws"
	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/models"
)

var (
	ErrNotificationsDisabled = errors.New("NOTIFICATIONS_DISABLED")
	ErrNotificationFailed    = errors.New("NOTIFICATION_SEND_FAILED")
)

// Notifier delivers scan digests over email and SMS. Either channel may be
// nil when its integration is disabled; calls then return
// ErrNotificationsDisabled instead of touching AWS.
type Notifier struct {
	ses       *aws.SESClient
	sns       *aws.SNSClient
	fromEmail string
	senderID  string
	logger    logger.Logger
}

func NewNotifier(ses *aws.SESClient, sns *aws.SNSClient, fromEmail, senderID string, log logger.Logger) *Notifier {
	return &Notifier{
		ses:       ses,
		sns:       sns,
		fromEmail: fromEmail,
		senderID:  senderID,
		logger:    log.WithFields(map[string]interface{}{"component": "notifier"}),
	}
}

// EmailDigest sends a plain-text summary of a finished scan to the user.
func (n *Notifier) EmailDigest(ctx context.Context, to, category, city string, leads []models.Lead) error {
	if n.ses == nil {
		return ErrNotificationsDisabled
	}

	subject := fmt.Sprintf("Your %s leads for %s", category, city)
	body := buildDigestBody(category, city, leads)

	if err := n.ses.SendPlainEmail(ctx, n.fromEmail, to, subject, body); err != nil {
		n.logger.Error("email digest failed", map[string]interface{}{
			"to":    to,
			"error": err.Error(),
		})
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	n.logger.Info("email digest sent", map[string]interface{}{
		"to":    to,
		"leads": len(leads),
	})
	return nil
}

// SMSAlert sends a short completion notice to the user's phone.
func (n *Notifier) SMSAlert(ctx context.Context, phone, category, city string, leadCount int) error {
	if n.sns == nil {
		return ErrNotificationsDisabled
	}

	message := fmt.Sprintf("Scan complete: %d %s leads found in %s.", leadCount, category, city)
	if err := n.sns.PublishSMS(ctx, phone, message, n.senderID); err != nil {
		n.logger.Error("sms alert failed", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return nil
}

func buildDigestBody(category, city string, leads []models.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scan results: %s in %s\n", category, city)
	fmt.Fprintf(&b, "%d leads with phone numbers\n\n", len(leads))

	for _, lead := range leads {
		fmt.Fprintf(&b, "%s\n", lead.Name)
		fmt.Fprintf(&b, "  Phone: %s\n", lead.Phone)
		if lead.Website != "" {
			fmt.Fprintf(&b, "  Website: %s\n", lead.Website)
		}
		if lead.Address != "" {
			fmt.Fprintf(&b, "  Address: %s\n", lead.Address)
		}
		b.WriteString("\n")
	}
	return b.String()
}
