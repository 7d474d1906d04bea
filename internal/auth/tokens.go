package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	domainerrors "github.com/pagetrail/pagetrail-server/internal/errors"
	"github.com/pagetrail/pagetrail-server/internal/id"
)

const (
	tokenIssuer   = "pagetrail-identity"
	tokenAudience = "pagetrail-server"
)

// TokenService issues and verifies PASETO v4.local access tokens.
//
// The identity provider and this server share the symmetric key. The server
// only needs VerifyAccessToken in production; GenerateAccessToken exists for
// the seed tool and tests.
type TokenService struct {
	symmetricKey        paseto.V4SymmetricKey
	accessTokenDuration time.Duration
	now                 func() time.Time
}

// NewTokenService creates a token service from a raw 32-byte key.
func NewTokenService(key []byte, accessDuration time.Duration) (*TokenService, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d bytes, got %d", keyLength, len(key))
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey:        symmetricKey,
		accessTokenDuration: accessDuration,
		now:                 time.Now,
	}, nil
}

// GenerateAccessToken creates an encrypted token identifying userID.
func (s *TokenService) GenerateAccessToken(userID, email string) (token string, expiresAt time.Time, err error) {
	now := s.now()
	expiresAt = now.Add(s.accessTokenDuration)

	t := paseto.NewToken()
	t.SetIssuer(tokenIssuer)
	t.SetSubject(userID)
	t.SetAudience(tokenAudience)
	t.SetIssuedAt(now)
	t.SetNotBefore(now)
	t.SetExpiration(expiresAt)

	tokenID, err := id.Generate(id.PrefixToken)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token ID: %w", err)
	}
	t.SetJti(tokenID)

	if err := t.Set("user_id", userID); err != nil {
		return "", time.Time{}, fmt.Errorf("set user_id claim: %w", err)
	}
	if email != "" {
		if err := t.Set("email", email); err != nil {
			return "", time.Time{}, fmt.Errorf("set email claim: %w", err)
		}
	}

	return t.V4Encrypt(s.symmetricKey, nil), expiresAt, nil
}

// VerifyAccessToken decrypts and validates a token.
// Expired tokens yield a TOKEN_EXPIRED error; anything else invalid yields
// UNAUTHORIZED.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	now := s.now()

	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnauthorized, "invalid access token")
	}

	exp, err := token.GetExpiration()
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnauthorized, "access token has no expiry")
	}
	if !now.Before(exp) {
		return nil, domainerrors.TokenExpired("access token expired")
	}
	if nbf, err := token.GetNotBefore(); err == nil && now.Before(nbf) {
		return nil, domainerrors.Unauthorized("access token not yet valid")
	}

	var claims AccessClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnauthorized, "malformed token claims")
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, domainerrors.Unauthorized("access token has no subject")
	}

	return &claims, nil
}

// AccessTokenDuration returns the configured access token lifetime.
func (s *TokenService) AccessTokenDuration() time.Duration {
	return s.accessTokenDuration
}
