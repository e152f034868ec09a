package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
	"github.com/dparedes/leagueadmin/internal/pkg/email"
	"github.com/dparedes/leagueadmin/internal/pkg/logger"
)

const (
	// MaxRecipients is the hard cap per send request.
	MaxRecipients = 100
	// SendBatchSize is how many recipients are processed between pauses.
	SendBatchSize = 50
	// batchPause separates consecutive batches to stay under provider rate
	// limits.
	batchPause = time.Second
)

// emailRoster resolves which addresses belong to registered students.
type emailRoster interface {
	GetRegisteredEmails(ctx context.Context) ([]string, error)
}

// NotificationService defines the interface for bulk email dispatch
type NotificationService interface {
	SendBulk(ctx context.Context, req *dto.SendEmailRequest) (*dto.SendEmailResponse, error)
}

// notificationServiceImpl implements the NotificationService interface
type notificationServiceImpl struct {
	sender email.Sender
	roster emailRoster
	pause  time.Duration
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(sender email.Sender, roster emailRoster) NotificationService {
	return &notificationServiceImpl{
		sender: sender,
		roster: roster,
		pause:  batchPause,
	}
}

// SendBulk dispatches a notification to every requested recipient that
// belongs to a registered student. Recipients are deduplicated, unknown
// addresses are dropped silently, and one failing recipient never aborts
// the rest of the send.
func (s *notificationServiceImpl) SendBulk(ctx context.Context, req *dto.SendEmailRequest) (*dto.SendEmailResponse, error) {
	if len(req.Recipients) > MaxRecipients {
		return nil, apperrors.ErrTooManyRecipients
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, fmt.Errorf("%w: subject cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.Message == "" && len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: either message or messages must be provided", apperrors.ErrValidationFailed)
	}
	if len(req.Messages) > 0 && len(req.Messages) != len(req.Recipients) {
		return nil, fmt.Errorf("%w: messages must be parallel to recipients", apperrors.ErrValidationFailed)
	}

	var attachment *email.Attachment
	if req.Attachment != nil {
		if _, err := base64.StdEncoding.DecodeString(req.Attachment.Content); err != nil {
			return nil, fmt.Errorf("%w: attachment content is not valid base64", apperrors.ErrValidationFailed)
		}
		attachment = &email.Attachment{
			Filename: req.Attachment.Filename,
			Content:  req.Attachment.Content,
			Type:     req.Attachment.Type,
		}
	}

	registered, err := s.roster.GetRegisteredEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading registered emails: %w", err)
	}
	known := make(map[string]bool, len(registered))
	for _, addr := range registered {
		known[strings.ToLower(addr)] = true
	}

	// Dedupe while keeping request order; the first occurrence wins its
	// parallel message.
	seen := make(map[string]bool, len(req.Recipients))
	type target struct {
		addr string
		body string
	}
	var targets []target
	for i, recipient := range req.Recipients {
		addr := strings.ToLower(strings.TrimSpace(recipient))
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		if !known[addr] {
			logger.Debug().Str("recipient", addr).Msg("Dropping unregistered recipient")
			continue
		}
		body := req.Message
		if len(req.Messages) > 0 {
			body = req.Messages[i]
		}
		targets = append(targets, target{addr: addr, body: body})
	}

	if len(targets) == 0 {
		return nil, apperrors.ErrNoValidRecipients
	}

	successEmails := make([]string, 0, len(targets))
	for start := 0; start < len(targets); start += SendBatchSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.pause):
			}
		}

		end := start + SendBatchSize
		if end > len(targets) {
			end = len(targets)
		}
		for _, t := range targets[start:end] {
			msg := email.Message{
				To:         t.addr,
				Subject:    req.Subject,
				Body:       t.body,
				Attachment: attachment,
			}
			if err := s.sender.Send(msg); err != nil {
				logger.Error().Err(err).Str("recipient", t.addr).Msg("Failed to send notification")
				continue
			}
			successEmails = append(successEmails, t.addr)
		}
	}

	return &dto.SendEmailResponse{
		Message:       fmt.Sprintf("Sent %d of %d messages", len(successEmails), len(targets)),
		SuccessEmails: successEmails,
	}, nil
}
