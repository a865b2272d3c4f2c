package wholesale

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
	"github.com/Terellreed1/smokers-club-sub000/pkg/mail"
	"github.com/Terellreed1/smokers-club-sub000/pkg/pagination"
)

// SubmitInput is the public wholesale inquiry form payload.
type SubmitInput struct {
	BusinessName string  `json:"business_name" validate:"required,max=200"`
	ContactName  string  `json:"contact_name" validate:"required,max=120"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Message      string  `json:"message" validate:"required,max=4000"`
}

// InquiryDTO is the admin-facing shape of an inquiry.
type InquiryDTO struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	ContactName  string    `json:"contact_name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListResult is one page of inquiries.
type ListResult struct {
	Inquiries []InquiryDTO    `json:"inquiries"`
	Meta      pagination.Meta `json:"meta"`
}

type repository interface {
	Create(ctx context.Context, inquiry *models.WholesaleInquiry) (*models.WholesaleInquiry, error)
	List(ctx context.Context, p pagination.Params) ([]models.WholesaleInquiry, int64, error)
}

type mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// Service stores wholesale inquiries and notifies the sales inbox. Email
// delivery is best effort: the inquiry is safe in the database either way.
type Service struct {
	repo   repository
	mailer mailer
	inbox  string
	logger *logger.Logger
}

// NewService builds the wholesale service. The mailer may be nil when email
// is not configured.
func NewService(repo repository, m mailer, inbox string, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wholesale repository is required")
	}
	return &Service{
		repo:   repo,
		mailer: m,
		inbox:  strings.TrimSpace(inbox),
		logger: logg,
	}, nil
}

// Submit persists the inquiry and emails the sales inbox.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*InquiryDTO, error) {
	business := strings.TrimSpace(input.BusinessName)
	contact := strings.TrimSpace(input.ContactName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	message := strings.TrimSpace(input.Message)
	if business == "" || contact == "" || email == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name, contact name, email, and message are required")
	}

	inquiry, err := s.repo.Create(ctx, &models.WholesaleInquiry{
		BusinessName: business,
		ContactName:  contact,
		Email:        email,
		Phone:        input.Phone,
		Message:      message,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store wholesale inquiry")
	}

	s.notify(ctx, inquiry)

	dto := fromModel(inquiry)
	return &dto, nil
}

// List returns inquiries newest first for the admin dashboard.
func (s *Service) List(ctx context.Context, p pagination.Params) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wholesale inquiries")
	}
	dtos := make([]InquiryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, fromModel(&rows[i]))
	}
	return &ListResult{Inquiries: dtos, Meta: pagination.NewMeta(p, total)}, nil
}

func (s *Service) notify(ctx context.Context, inquiry *models.WholesaleInquiry) {
	if s.mailer == nil || s.inbox == "" {
		return
	}

	phone := "not provided"
	if inquiry.Phone != nil && strings.TrimSpace(*inquiry.Phone) != "" {
		phone = *inquiry.Phone
	}
	body := fmt.Sprintf(
		"<p><strong>%s</strong> (%s) asked about wholesale.</p><p>Email: %s<br>Phone: %s</p><p>%s</p>",
		html.EscapeString(inquiry.BusinessName),
		html.EscapeString(inquiry.ContactName),
		html.EscapeString(inquiry.Email),
		html.EscapeString(phone),
		html.EscapeString(inquiry.Message),
	)

	err := s.mailer.Send(ctx, mail.Message{
		ToAddress: s.inbox,
		Subject:   fmt.Sprintf("Wholesale inquiry from %s", inquiry.BusinessName),
		HTMLBody:  body,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn(
			s.logger.WithField(ctx, "inquiry_id", inquiry.ID.String()),
			"wholesale notification email failed",
		)
	}
}

func fromModel(m *models.WholesaleInquiry) InquiryDTO {
	return InquiryDTO{
		ID:           m.ID,
		BusinessName: m.BusinessName,
		ContactName:  m.ContactName,
		Email:        m.Email,
		Phone:        m.Phone,
		Message:      m.Message,
		CreatedAt:    m.CreatedAt,
	}
}
