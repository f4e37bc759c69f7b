package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

// PostmarkConfig holds configuration for the Postmark email channel.
type PostmarkConfig struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN,required"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN,required"`
	SenderEmail  string `env:"POSTMARK_SENDER_EMAIL,required"`
	ReplyToEmail string `env:"POSTMARK_REPLY_TO_EMAIL"`
}

// PostmarkDispatcher delivers notices as transactional emails.
type PostmarkDispatcher struct {
	client *postmark.Client
	config PostmarkConfig
}

// NewPostmarkDispatcher creates a Postmark-backed dispatcher. All tokens are
// required up front; a broken channel should fail at startup, not at the
// first overdue invoice.
func NewPostmarkDispatcher(cfg PostmarkConfig) (*PostmarkDispatcher, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: ServerToken is required", ErrInvalidConfig)
	}
	if cfg.AccountToken == "" {
		return nil, fmt.Errorf("%w: AccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}

	return &PostmarkDispatcher{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
	}, nil
}

func (d *PostmarkDispatcher) Dispatch(ctx context.Context, notice Notice) error {
	if notice.Recipient == "" {
		return fmt.Errorf("%w: notice has no recipient", ErrInvalidNotice)
	}

	resp, err := d.client.SendEmail(ctx, postmark.Email{
		From:     d.config.SenderEmail,
		ReplyTo:  d.config.ReplyToEmail,
		To:       notice.Recipient,
		Subject:  notice.Subject,
		Tag:      notice.Tag,
		TextBody: strings.Join(notice.Lines, "\n"),
	})
	if err != nil {
		return errors.Join(ErrFailedToDispatch, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrFailedToDispatch, fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
