package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Terellreed1/smokers-club-sub000/pkg/config"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
)

var (
	errAPIKeyRequired = errors.New("sendgrid api key is required")
	errFromRequired   = errors.New("sendgrid default from address is required")
	errMailLogger     = errors.New("mail logger is required")
)

// Client sends transactional email through SendGrid.
type Client struct {
	sg       *sendgrid.Client
	fromName string
	fromAddr string
	logger   *logger.Logger
}

// Message is one outbound email.
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	PlainBody string
	HTMLBody  string
}

// NewClient validates the SendGrid configuration and returns a mail client.
func NewClient(cfg config.SendgridConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errMailLogger
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	fromAddr := strings.TrimSpace(cfg.DefaultFrom)
	if fromAddr == "" {
		return nil, errFromRequired
	}
	return &Client{
		sg:       sendgrid.NewSendClient(apiKey),
		fromName: "Smokers Club",
		fromAddr: fromAddr,
		logger:   logg,
	}, nil
}

// Send delivers the message, returning a dependency error on SendGrid
// failures so callers can decide whether delivery is fatal. A nil client
// refuses to send rather than panic: a typed-nil *Client can slip through
// interface nil checks upstream.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil || c.sg == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "mail client is not configured")
	}
	if strings.TrimSpace(msg.ToAddress) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient address is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "subject is required")
	}

	from := sgmail.NewEmail(c.fromName, c.fromAddr)
	to := sgmail.NewEmail(msg.ToName, msg.ToAddress)
	plain := msg.PlainBody
	if plain == "" {
		plain = msg.HTMLBody
	}
	email := sgmail.NewSingleEmail(from, msg.Subject, to, plain, msg.HTMLBody)

	resp, err := c.sg.SendWithContext(ctx, email)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sendgrid send failed")
	}
	if resp.StatusCode >= 400 {
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("sendgrid rejected message with status %d", resp.StatusCode))
	}

	c.logger.Info(c.logger.WithField(ctx, "subject", msg.Subject), "email dispatched")
	return nil
}
