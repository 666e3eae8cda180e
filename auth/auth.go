// Package auth implements the session bookkeeping the REST backend expects:
// fetch a challenge, sign it with the configured account, exchange it for a
// bearer token and reuse that token until shortly before expiry.
package auth

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/golang-jwt/jwt/v5"

	"github.com/LendzLabs/nftfi-go/account"
	"github.com/LendzLabs/nftfi-go/api"
)

// Token refresh happens this long before the recorded expiry so in-flight
// requests never carry a token about to lapse.
const expirySlack = 30 * time.Second

// Service is an api.TokenSource backed by the challenge/sign flow.
type Service struct {
	api     *api.Client
	account account.Account
	now     func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// New wires the flow against an unauthenticated API client.
func New(apiClient *api.Client, acct account.Account) *Service {
	return &Service{api: apiClient, account: acct, now: time.Now}
}

type challengeResponse struct {
	Challenge string `json:"challenge"`
}

type tokenRequest struct {
	Address   string `json:"address"`
	Challenge string `json:"challenge"`
	Signature string `json:"signature"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Token implements api.TokenSource.
func (s *Service) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && (s.expiry.IsZero() || s.now().Before(s.expiry.Add(-expirySlack))) {
		return s.token, nil
	}
	token, err := s.authenticate(ctx)
	if err != nil {
		return "", err
	}
	s.token = token
	s.expiry = tokenExpiry(token)
	return s.token, nil
}

func (s *Service) authenticate(ctx context.Context) (string, error) {
	address, err := s.account.Address()
	if err != nil {
		return "", err
	}
	params := url.Values{}
	params.Set("address", address.Hex())
	var challenge challengeResponse
	if err := s.api.Get(ctx, "/authentication/challenge", params, &challenge); err != nil {
		return "", fmt.Errorf("auth: fetch challenge: %w", err)
	}
	signature, err := s.account.SignText(ctx, []byte(challenge.Challenge))
	if err != nil {
		return "", fmt.Errorf("auth: sign challenge: %w", err)
	}
	var token tokenResponse
	err = s.api.Post(ctx, "/authentication/token", tokenRequest{
		Address:   address.Hex(),
		Challenge: challenge.Challenge,
		Signature: hexutil.Encode(signature),
	}, &token)
	if err != nil {
		return "", fmt.Errorf("auth: exchange token: %w", err)
	}
	return token.Token, nil
}

// tokenExpiry reads the exp claim without verifying the token; verification
// is the server's job, the client only needs to know when to refresh. A
// token without a readable expiry is kept until the backend rejects it.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
