package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/medesi/portal/internal/client/models"
	"github.com/medesi/portal/internal/client/transport"
	"github.com/medesi/portal/internal/common"
)

// HTTPClient implements Client over REST+JSON.
type HTTPClient struct {
	t *transport.Client
}

func NewHTTPClient(t *transport.Client) *HTTPClient {
	return &HTTPClient{t: t}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

type forgotPasswordRequest struct {
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.t.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   common.PathLogin,
		Body:   loginRequest{Email: email, Password: password, UserType: common.UserTypeStudent},
	})
	if err != nil {
		return "", mapError(err)
	}
	if !resp.Successful() {
		return "", statusError(resp, false)
	}
	return decodeToken(resp.Body)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.t.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   common.PathForgotPassword,
		Body:   forgotPasswordRequest{Email: email, UserType: common.UserTypeStudent},
	})
	if err != nil {
		return mapError(err)
	}
	if !resp.Successful() {
		return statusError(resp, false)
	}
	return nil
}

func (c *HTTPClient) GetMe(ctx context.Context, token string) (*models.User, error) {
	resp, err := c.t.Do(ctx, getMeRequest(token))
	return userResult(resp, err)
}

func (c *HTTPClient) GetMeAsync(ctx context.Context, token string, done func(*models.User, error)) {
	c.t.Go(ctx, getMeRequest(token), transport.Callbacks{
		OnFailure:  func(err error) { done(userResult(nil, err)) },
		OnResponse: func(resp *transport.Response) { done(userResult(resp, nil)) },
	})
}

func (c *HTTPClient) UpdateMe(ctx context.Context, token string, update models.ProfileUpdate) error {
	resp, err := c.t.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   common.PathPatientMe,
		Token:  token,
		Body:   update,
	})
	if err != nil {
		return mapError(err)
	}
	if !resp.Successful() {
		return statusError(resp, true)
	}
	return nil
}

func (c *HTTPClient) GetMedicalRecord(ctx context.Context, token string) (*models.MedicalRecord, error) {
	resp, err := c.t.Do(ctx, getMedicalRecordRequest(token))
	return medicalRecordResult(resp, err)
}

func (c *HTTPClient) GetMedicalRecordAsync(ctx context.Context, token string, done func(*models.MedicalRecord, error)) {
	c.t.Go(ctx, getMedicalRecordRequest(token), transport.Callbacks{
		OnFailure:  func(err error) { done(medicalRecordResult(nil, err)) },
		OnResponse: func(resp *transport.Response) { done(medicalRecordResult(resp, nil)) },
	})
}

func getMeRequest(token string) transport.Request {
	return transport.Request{Method: http.MethodGet, Path: common.PathPatientMe, Token: token}
}

func getMedicalRecordRequest(token string) transport.Request {
	return transport.Request{Method: http.MethodGet, Path: common.PathMedicalRecord, Token: token}
}

func userResult(resp *transport.Response, err error) (*models.User, error) {
	if err != nil {
		return nil, mapError(err)
	}
	if !resp.Successful() {
		return nil, statusError(resp, true)
	}
	return decodeUser(resp.Body)
}

func medicalRecordResult(resp *transport.Response, err error) (*models.MedicalRecord, error) {
	if err != nil {
		return nil, mapError(err)
	}
	if !resp.Successful() {
		return nil, statusError(resp, true)
	}
	return decodeMedicalRecord(resp.Body)
}

// mapError classifies a failure that produced no response.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// statusError builds the error for a non-2xx response. On authenticated
// calls a 401 additionally matches ErrAuthExpired.
func statusError(resp *transport.Response, authenticated bool) error {
	se := &StatusError{Code: resp.Status, Message: decodeMessage(resp.Body)}
	if authenticated && resp.Status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", ErrAuthExpired, se)
	}
	return se
}
