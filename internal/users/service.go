package users

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/FahriNazarudin/E-commerce/internal/apperr"
)

type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
}

// GoogleVerifier checks a Google ID token and returns the verified profile.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (email, name string, err error)
}

type Service struct {
	Store  Store
	Google GoogleVerifier
}

type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Address     string `json:"address"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	switch {
	case in.Username == "":
		return nil, apperr.New(apperr.Validation, "username is required!")
	case in.Email == "":
		return nil, apperr.New(apperr.Validation, "Email is required!")
	case !strings.Contains(in.Email, "@"):
		return nil, apperr.New(apperr.Validation, "Email format is wrong")
	case len(in.PhoneNumber) < 8:
		return nil, apperr.New(apperr.Validation, "Phone Number minimal 8 character")
	case len(in.Password) < 6:
		return nil, apperr.New(apperr.Validation, "Password minimal 6 character")
	case in.Address == "":
		return nil, apperr.New(apperr.Validation, "Address is required!")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &User{
		Username:    in.Username,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Password:    string(hashed),
		Address:     in.Address,
		Role:        RoleUser,
	}
	if err := s.Store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	if email == "" {
		return nil, apperr.New(apperr.Validation, "Email is required")
	}
	if password == "" {
		return nil, apperr.New(apperr.Validation, "Password is required")
	}
	u, err := s.Store.GetByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Unauthorized, "Invalid email/password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Unauthorized, "Invalid email/password")
	}
	return u, nil
}

// GoogleLogin verifies the ID token and resolves the account, creating one on
// first login. The generated password is random; Google accounts sign in
// through this path only.
func (s *Service) GoogleLogin(ctx context.Context, idToken string) (*User, error) {
	if idToken == "" {
		return nil, apperr.New(apperr.Validation, "Google token is required")
	}
	email, name, err := s.Google.Verify(ctx, idToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthorized, "Unauthorized access", err)
	}

	u, err := s.Store.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if apperr.KindOf(err) != apperr.NotFound {
		return nil, err
	}

	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u = &User{
		Username:    name,
		Email:       email,
		PhoneNumber: "000000000000",
		Password:    string(hashed),
		Address:     "-",
		Role:        RoleUser,
	}
	if err := s.Store.Create(ctx, u); err != nil {
		// lost the race against a concurrent first login; re-read
		if apperr.KindOf(err) == apperr.Validation {
			return s.Store.GetByEmail(ctx, email)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.Store.GetByID(ctx, id)
}

type UpdateInput struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*User, error) {
	u, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Username != "" {
		u.Username = in.Username
	}
	if in.PhoneNumber != "" {
		if len(in.PhoneNumber) < 8 {
			return nil, apperr.New(apperr.Validation, "Phone Number minimal 8 character")
		}
		u.PhoneNumber = in.PhoneNumber
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if err := s.Store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
