// Package account validates and submits the registration and login forms,
// reconciling the server-confirmed identity with the local user record. The
// upstream is authoritative; the local row is a cache.
package account

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/milsabores/storefront/internal/upstream"
)

var ErrNoAccount = errors.New("account: no signed-in account")

// Remote is the slice of the upstream client this service needs.
type Remote interface {
	Login(ctx context.Context, email, password string) (upstream.LoginResult, error)
	Register(ctx context.Context, reg upstream.Registration) error
}

// Sessions issues and revokes bearer sessions.
type Sessions interface {
	Issue(ctx context.Context, email, role string) (string, error)
	Clear(ctx context.Context, token string) error
}

// Users is the local user cache.
type Users interface {
	Get(ctx context.Context, email string) (User, error)
	Upsert(ctx context.Context, u User) error
	Delete(ctx context.Context, email string) error
}

type Service struct {
	Remote   Remote
	Users    Users
	Sessions Sessions
	Log      *zap.Logger
}

// Register validates locally, then submits upstream. Field errors (including
// a remote rejection attached to the email field) come back in the map; the
// error return is reserved for internal failures. No local row is written
// unless the upstream accepted the registration.
func (s *Service) Register(ctx context.Context, f RegisterForm) (map[string]string, error) {
	if errs := Validate(f); len(errs) > 0 {
		return errs, nil
	}

	reg := upstream.Registration{
		Username:  f.Email,
		Password:  f.Password,
		Names:     f.Name,
		Surnames:  f.Surnames,
		Birthdate: f.Birthdate,
		Address:   f.Address,
	}
	if err := s.Remote.Register(ctx, reg); err != nil {
		s.Log.Info("registration rejected", zap.String("email", f.Email), zap.Error(err))
		return map[string]string{"email": err.Error()}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("account: hash password: %w", err)
	}
	u := User{
		Email:        f.Email,
		Name:         f.Name,
		Surnames:     f.Surnames,
		PasswordHash: string(hash),
		Birthdate:    f.Birthdate,
		Address:      f.Address,
	}
	if err := s.Users.Upsert(ctx, u); err != nil {
		return nil, fmt.Errorf("account: store user: %w", err)
	}
	return nil, nil
}

// Login validates locally, submits the credentials upstream, and on success
// issues a session and loads or creates the matching local record. On
// rejection the session is left untouched.
func (s *Service) Login(ctx context.Context, f LoginForm) (string, map[string]string, error) {
	if errs := Validate(f); len(errs) > 0 {
		return "", errs, nil
	}

	res, err := s.Remote.Login(ctx, f.Email, f.Password)
	if err != nil {
		s.Log.Info("login rejected", zap.String("email", f.Email), zap.Error(err))
		return "", map[string]string{"email": err.Error()}, nil
	}

	token, err := s.Sessions.Issue(ctx, f.Email, res.Role)
	if err != nil {
		return "", nil, err
	}

	if _, err := s.Users.Get(ctx, f.Email); errors.Is(err, ErrUserNotFound) {
		hash, herr := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
		if herr != nil {
			return "", nil, fmt.Errorf("account: hash password: %w", herr)
		}
		if err := s.Users.Upsert(ctx, User{Email: f.Email, PasswordHash: string(hash)}); err != nil {
			return "", nil, fmt.Errorf("account: cache user: %w", err)
		}
	} else if err != nil {
		return "", nil, err
	}
	return token, nil, nil
}

// Logout clears the session and always succeeds.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.Sessions.Clear(ctx, token)
}

// Delete removes the local user record and revokes the session. A blank
// email is reported as a failure.
func (s *Service) Delete(ctx context.Context, email, token string) error {
	if email == "" {
		return ErrNoAccount
	}
	if err := s.Users.Delete(ctx, email); err != nil {
		return fmt.Errorf("account: delete user: %w", err)
	}
	return s.Sessions.Clear(ctx, token)
}

type ProfileUpdate struct {
	Name     string `json:"name"`
	Surnames string `json:"surnames"`
	Address  string `json:"address"`
	Image    string `json:"image"`
}

// UpdateProfile edits the mutable profile fields of the local record.
func (s *Service) UpdateProfile(ctx context.Context, email string, upd ProfileUpdate) (User, error) {
	u, err := s.Users.Get(ctx, email)
	if err != nil {
		return User{}, err
	}
	u.Name = upd.Name
	u.Surnames = upd.Surnames
	u.Address = upd.Address
	u.Image = upd.Image
	if err := s.Users.Upsert(ctx, u); err != nil {
		return User{}, fmt.Errorf("account: update profile: %w", err)
	}
	return u, nil
}

// Profile returns the local record for the signed-in user.
func (s *Service) Profile(ctx context.Context, email string) (User, error) {
	return s.Users.Get(ctx, email)
}
