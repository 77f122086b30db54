package service

import (
	"context"
	"errors"
	"fmt"

	dom "Socialmedia/internal/domain"
	"Socialmedia/internal/repo"

	"github.com/rs/zerolog"
)

// AccountService handles registration, login and account lookups.
type AccountService struct {
	repo repo.AccountRepo
	log  zerolog.Logger
}

// NewAccountService returns a new AccountService.
func NewAccountService(repo repo.AccountRepo, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, log: log.With().Str("component", "account_service").Logger()}
}

// Register validates candidate and stores it. A taken username is a
// validation failure whether it is seen by the lookup or by the unique index.
func (s *AccountService) Register(ctx context.Context, candidate dom.Account) (dom.Account, error) {
	if err := dom.ValidateAccount(candidate).Err(); err != nil {
		return dom.Account{}, err
	}

	_, err := s.repo.GetByUsername(ctx, candidate.Username)
	if err == nil {
		return dom.Account{}, dom.ViolationUsernameTaken.Err()
	}
	if !errors.Is(err, repo.ErrNoRows) {
		return dom.Account{}, fmt.Errorf("lookup username: %w", err)
	}

	a, err := s.repo.Create(ctx, dom.Account{Username: candidate.Username, Password: candidate.Password})
	if err != nil {
		if errors.Is(err, repo.ErrUniqueViolation) {
			return dom.Account{}, dom.ViolationUsernameTaken.Err()
		}
		return dom.Account{}, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}

// Login returns the account when username exists and its password matches
// exactly. A miss is reported with ok=false, not an error.
func (s *AccountService) Login(ctx context.Context, username, password string) (dom.Account, bool, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return dom.Account{}, false, nil
		}
		return dom.Account{}, false, fmt.Errorf("lookup username: %w", err)
	}
	if a.Password != password {
		return dom.Account{}, false, nil
	}
	return a, true, nil
}

// Exists reports whether an account with id is stored. Store failures are
// logged and reported as false.
func (s *AccountService) Exists(ctx context.Context, id int64) bool {
	_, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return true
	}
	if !errors.Is(err, repo.ErrNoRows) {
		s.log.Warn().Err(err).Int64("account_id", id).Msg("account existence check failed")
	}
	return false
}
