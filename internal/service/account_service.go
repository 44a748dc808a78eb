package service

import (
	"strings"

	"tradepost/internal/model"
	"tradepost/internal/repository"
)

// AccountService validates and orchestrates signup, login and profile
// updates on top of the user repository.
type AccountService struct {
	users *repository.UserRepository
}

func NewAccountService(users *repository.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// NormalizeEmail is applied to every email before it reaches the repository.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new account. All fields are required; the email is
// normalized to lowercase. Returns repository.ErrEmailTaken on a duplicate.
func (s *AccountService) Signup(email, password, username string) error {
	email = NormalizeEmail(email)
	username = strings.TrimSpace(username)
	if email == "" || password == "" || username == "" {
		return validationError("email, password and username are required")
	}
	return s.users.Add(email, password, username)
}

// Login returns the account when the credentials match exactly, otherwise
// ErrInvalidCredentials.
func (s *AccountService) Login(email, password string) (*model.Account, error) {
	a, err := s.users.ValidateLogin(NormalizeEmail(email), password)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// Profile returns the account for the given email, or ErrNotFound.
func (s *AccountService) Profile(email string) (*model.Account, error) {
	a, err := s.users.Get(email)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// ProfileUpdate carries the profile form fields. Username and avatar fall
// back to the current value when submitted empty; the bio is always written,
// so it can be cleared.
type ProfileUpdate struct {
	Username string
	Bio      string
	Avatar   string
}

// UpdateProfile applies upd to the account and returns the refreshed record.
func (s *AccountService) UpdateProfile(email string, upd ProfileUpdate) (*model.Account, error) {
	current, err := s.Profile(email)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(upd.Username)
	if username == "" {
		username = current.Username
	}
	avatar := strings.TrimSpace(upd.Avatar)
	if avatar == "" {
		avatar = current.Avatar
	}
	bio := strings.TrimSpace(upd.Bio)

	err = s.users.Update(email, repository.AccountUpdate{
		Username: &username,
		Bio:      &bio,
		Avatar:   &avatar,
	})
	if err != nil {
		return nil, err
	}
	return s.Profile(email)
}
