package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthProvider defines the interface for GitHub authentication
type AuthProvider interface {
	GetInstallationToken(ctx context.Context) (*InstallationToken, error)
}

// AppAuth holds GitHub App authentication configuration
type AppAuth struct {
	AppID          string
	InstallationID string
	PrivateKey     string

	// BaseURL and HTTPClient are optional; they default to api.github.com
	// and http.DefaultClient.
	BaseURL    string
	HTTPClient *http.Client

	now func() time.Time
}

// InstallationToken represents a GitHub App installation access token
type InstallationToken struct {
	Token     string
	ExpiresAt time.Time
}

// GenerateJWT creates a JWT token for GitHub App authentication
func (a *AppAuth) GenerateJWT() (string, error) {
	// Parse private key
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(a.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("failed to parse private key: %w", err)
	}

	// Convert App ID to int
	appID, err := strconv.ParseInt(a.AppID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid app ID: %w", err)
	}

	// Backdate iat to absorb clock drift against GitHub
	now := a.clock()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now.Add(-60 * time.Second)),
		ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		Issuer:    strconv.FormatInt(appID, 10),
	}

	// Create and sign token
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}

	return signedToken, nil
}

// GetInstallationToken exchanges an app JWT for an installation access token
func (a *AppAuth) GetInstallationToken(ctx context.Context) (*InstallationToken, error) {
	installationID, err := strconv.ParseInt(a.InstallationID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid installation ID: %w", err)
	}

	jwtToken, err := a.GenerateJWT()
	if err != nil {
		return nil, err
	}

	client, err := NewClient(a.HTTPClient, a.BaseURL, jwtToken)
	if err != nil {
		return nil, err
	}

	token, _, err := client.Apps.CreateInstallationToken(ctx, installationID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get installation token: %w", err)
	}
	if token.GetToken() == "" {
		return nil, fmt.Errorf("GitHub returned an empty installation token")
	}

	return &InstallationToken{
		Token:     token.GetToken(),
		ExpiresAt: token.GetExpiresAt().Time,
	}, nil
}

func (a *AppAuth) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}
