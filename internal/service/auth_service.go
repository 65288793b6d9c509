package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/krosec/sec-guard/internal/auth"
	"github.com/krosec/sec-guard/internal/model"
)

type AuthService struct {
	store  Store
	issuer *auth.Issuer
}

func NewAuthService(store Store, issuer *auth.Issuer) *AuthService {
	return &AuthService{store: store, issuer: issuer}
}

type LoginResult struct {
	AccessToken string
	Employee    *model.Employee
}

// Login authenticates an employee by login and password and issues an
// access token. Wrong login and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	if login == "" || password == "" {
		return nil, fmt.Errorf("%w: login and password are required", ErrInvalidInput)
	}

	employee, err := s.store.FindEmployeeByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: bad credentials", ErrPermissionDenied)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: bad credentials", ErrPermissionDenied)
	}

	token, err := s.issuer.Issue(employee.ID, employee.Login, employee.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, Employee: employee}, nil
}

// HashPassword is used when creating or updating employee records.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
