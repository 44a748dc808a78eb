package repository

import (
	"errors"

	"tradepost/internal/model"
	"tradepost/internal/storage"
)

// ErrEmailTaken is returned when a signup collides with an existing account.
var ErrEmailTaken = errors.New("an account with this email already exists")

// UserRepository manages account records keyed by lowercase email.
type UserRepository struct {
	store *storage.Store[model.Account]
}

func NewUserRepository(store *storage.Store[model.Account]) *UserRepository {
	return &UserRepository{store: store}
}

// Get returns the first account whose email matches exactly, or nil.
// Callers normalize the email to lowercase before lookup.
func (r *UserRepository) Get(email string) (*model.Account, error) {
	accounts, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, nil
}

// Add appends a new account with an empty bio and the default avatar. The
// uniqueness check runs inside the store lock so two concurrent signups with
// the same email cannot both succeed.
func (r *UserRepository) Add(email, password, username string) error {
	return r.store.Update(func(accounts []model.Account) ([]model.Account, error) {
		for _, a := range accounts {
			if a.Email == email {
				return nil, ErrEmailTaken
			}
		}
		return append(accounts, model.Account{
			Email:    email,
			Password: password,
			Username: username,
			Bio:      "",
			Avatar:   model.DefaultAvatar,
		}), nil
	})
}

// ValidateLogin returns the account only if it exists and its stored
// password equals the supplied one exactly.
func (r *UserRepository) ValidateLogin(email, password string) (*model.Account, error) {
	a, err := r.Get(email)
	if err != nil {
		return nil, err
	}
	if a == nil || a.Password != password {
		return nil, nil
	}
	return a, nil
}

// AccountUpdate is a partial account mutation. Nil fields are left untouched;
// set fields overwrite, including to the empty string (a bio can be cleared).
type AccountUpdate struct {
	Username *string
	Bio      *string
	Avatar   *string
}

// Update merges upd into the first matching account. No-op if the email is
// unknown.
func (r *UserRepository) Update(email string, upd AccountUpdate) error {
	return r.store.Update(func(accounts []model.Account) ([]model.Account, error) {
		for i := range accounts {
			if accounts[i].Email != email {
				continue
			}
			if upd.Username != nil {
				accounts[i].Username = *upd.Username
			}
			if upd.Bio != nil {
				accounts[i].Bio = *upd.Bio
			}
			if upd.Avatar != nil {
				accounts[i].Avatar = *upd.Avatar
			}
			break
		}
		return accounts, nil
	})
}

// Count reports the number of accounts.
func (r *UserRepository) Count() (int, error) {
	accounts, err := r.store.Load()
	if err != nil {
		return 0, err
	}
	return len(accounts), nil
}
