package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Identity is an identity authenticated by the provider.
type Identity struct {
	LocalID string
	Email   string
	IDToken string
}

// PasswordProvider signs in with email and password.
type PasswordProvider interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
}

// IdentityToolkit is a PasswordProvider speaking the Identity Toolkit REST API
// (accounts:signInWithPassword).
type IdentityToolkit struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ PasswordProvider = (*IdentityToolkit)(nil)

// NewIdentityToolkit creates a provider. authDomain is the API base URL,
// e.g. https://identitytoolkit.googleapis.com.
func NewIdentityToolkit(authDomain, apiKey string, client *http.Client) *IdentityToolkit {
	if client == nil {
		client = http.DefaultClient
	}
	return &IdentityToolkit{
		endpoint: strings.TrimRight(authDomain, "/") + "/v1/accounts:signInWithPassword",
		apiKey:   apiKey,
		client:   client,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type signInError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *IdentityToolkit) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, errors.Wrap(err, "encode sign-in request")
	}

	u := p.endpoint + "?key=" + url.QueryEscape(p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build sign-in request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(&ProviderError{Code: CodeNetworkFailure}, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var se signInError
		if err := json.NewDecoder(resp.Body).Decode(&se); err != nil || se.Error.Message == "" {
			return nil, &ProviderError{Code: resp.Status}
		}
		code := se.Error.Message
		if strings.HasPrefix(code, "API key not valid") {
			code = CodeInvalidAPIKey
		}
		return nil, &ProviderError{Code: code}
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode sign-in response")
	}

	return &Identity{LocalID: out.LocalID, Email: out.Email, IDToken: out.IDToken}, nil
}
