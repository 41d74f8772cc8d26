package accounts

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

// Service implements app.AccountService over the REST API.
type Service struct {
	client *Client
}

// NewService creates an account service backed by client.
func NewService(client *Client) *Service {
	return &Service{client: client}
}

type userEnvelope struct {
	Message string         `json:"message"`
	User    domain.Account `json:"user"`
	Token   string         `json:"token,omitempty"`
}

func (s *Service) Register(ctx context.Context, reg domain.Registration) (domain.Account, error) {
	var out userEnvelope
	if err := s.client.do(ctx, http.MethodPost, "/users", reg, &out); err != nil {
		return domain.Account{}, fmt.Errorf("registering: %w", err)
	}
	return out.User, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (domain.Account, string, error) {
	in := map[string]string{"email": email, "password": password}
	var out userEnvelope
	if err := s.client.do(ctx, http.MethodPost, "/login", in, &out); err != nil {
		return domain.Account{}, "", fmt.Errorf("logging in: %w", err)
	}
	return out.User, out.Token, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	if err := s.client.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return out, nil
}

// GetUser fetches a single account.
func (s *Service) GetUser(ctx context.Context, id string) (domain.Account, error) {
	var out domain.Account
	if err := s.client.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return domain.Account{}, fmt.Errorf("fetching user: %w", err)
	}
	return out, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (domain.Account, error) {
	var out userEnvelope
	if err := s.client.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), patch, &out, s.client.withBearer()); err != nil {
		return domain.Account{}, fmt.Errorf("updating profile: %w", err)
	}
	return out.User, nil
}

func (s *Service) Ban(ctx context.Context, admin domain.Registered, id string, minutes int) (domain.Account, error) {
	in := map[string]int{"minutes": minutes}
	var out userEnvelope
	if err := s.client.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/ban", in, &out, withAdmin(admin)); err != nil {
		return domain.Account{}, fmt.Errorf("banning user: %w", err)
	}
	return out.User, nil
}

func (s *Service) Unban(ctx context.Context, admin domain.Registered, id string) (domain.Account, error) {
	var out userEnvelope
	if err := s.client.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/unban", nil, &out, withAdmin(admin)); err != nil {
		return domain.Account{}, fmt.Errorf("unbanning user: %w", err)
	}
	return out.User, nil
}

// DeleteUser removes an account.
func (s *Service) DeleteUser(ctx context.Context, admin domain.Registered, id string) error {
	if err := s.client.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, withAdmin(admin)); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
