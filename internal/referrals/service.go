package referrals

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Terellreed1/smokers-club-sub000/pkg/db"
	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
)

// Codes avoid 0/O and 1/I so they survive being read aloud.
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const (
	codePrefix = "SC-"
	codeLength = 6
	maxRetries = 5
)

// CodeDTO is the public shape of a referral code.
type CodeDTO struct {
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// StatsDTO summarizes how a referral code has performed.
type StatsDTO struct {
	Code        string `json:"code"`
	SignupCount int64  `json:"signup_count"`
}

type repository interface {
	FindCodeByEmail(ctx context.Context, email string) (*models.ReferralCode, error)
	FindByCode(ctx context.Context, code string) (*models.ReferralCode, error)
	CreateCode(ctx context.Context, code *models.ReferralCode) error
	CreateSignup(ctx context.Context, signup *models.ReferralSignup) error
	CountSignups(ctx context.Context, codeID uuid.UUID) (int64, error)
}

// Service mints referral codes and records the signups they bring in.
type Service struct {
	repo repository
}

// NewService builds the referral service.
func NewService(repo repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("referral repository is required")
	}
	return &Service{repo: repo}, nil
}

// GetOrCreateCode returns the shopper's referral code, minting one on first
// request. One code per email.
func (s *Service) GetOrCreateCode(ctx context.Context, email string) (*CodeDTO, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindCodeByEmail(ctx, email)
	if err == nil {
		return &CodeDTO{Code: existing.Code, CreatedAt: existing.CreatedAt}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup referral code")
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		code := &models.ReferralCode{
			Code:  generateCode(),
			Email: email,
		}
		err := s.repo.CreateCode(ctx, code)
		if err == nil {
			return &CodeDTO{Code: code.Code, CreatedAt: code.CreatedAt}, nil
		}
		if db.IsUniqueViolation(err, "referral_codes_code_key") {
			continue
		}
		if db.IsUniqueViolation(err, "referral_codes_email_key") {
			// lost a race with a concurrent first request for this email
			existing, lookupErr := s.repo.FindCodeByEmail(ctx, email)
			if lookupErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, lookupErr, "lookup referral code")
			}
			return &CodeDTO{Code: existing.Code, CreatedAt: existing.CreatedAt}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store referral code")
	}
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "could not mint a unique referral code")
}

// RecordSignup attributes a new shopper signup to a referral code.
func (s *Service) RecordSignup(ctx context.Context, code, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "referral code is required")
	}

	record, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "referral code not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup referral code")
	}
	if record.Email == email {
		return pkgerrors.New(pkgerrors.CodeValidation, "you cannot use your own referral code")
	}

	if err := s.repo.CreateSignup(ctx, &models.ReferralSignup{
		ReferralCodeID: record.ID,
		Email:          email,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store referral signup")
	}
	return nil
}

// Stats reports how many signups a code has produced.
func (s *Service) Stats(ctx context.Context, code string) (*StatsDTO, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	record, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "referral code not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup referral code")
	}

	count, err := s.repo.CountSignups(ctx, record.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count referral signups")
	}
	return &StatsDTO{Code: record.Code, SignupCount: count}, nil
}

func generateCode() string {
	var sb strings.Builder
	sb.WriteString(codePrefix)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(fmt.Sprintf("generate referral code: %v", err))
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}
	return sb.String()
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	return email, nil
}
