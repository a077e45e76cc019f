package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

// ErrInvalidHostToken is returned when a join presents a token that does not grant hosting.
var ErrInvalidHostToken = errors.New("invalid host token")

// HostTokenService issues and checks the tokens that let one user drive a match.
type HostTokenService struct {
	secret string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewHostTokenService(secret, issuer string, ttl time.Duration) *HostTokenService {
	if ttl <= 0 {
		ttl = DefaultHostTokenTTL
	}
	return &HostTokenService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token naming user as host of matchID.
func (s *HostTokenService) Issue(user, matchID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("host token service is nil")
	}
	if user == "" || matchID == "" {
		return "", fmt.Errorf("user and match id are required")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("host token config is incomplete")
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss":        s.issuer,
		"sub":        user,
		"iat":        now.Unix(),
		"exp":        now.Add(s.ttl).Unix(),
		"jti":        uuid.NewString(),
		claimMatchID: matchID,
		claimRole:    roleHost,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("sign host token: %w", err)
	}
	return signed, nil
}

// Verify checks that tokenString was issued here for user as host of matchID.
func (s *HostTokenService) Verify(tokenString, user, matchID string) error {
	if s == nil || s.secret == "" {
		return fmt.Errorf("host token config is incomplete")
	}
	if tokenString == "" {
		return ErrInvalidHostToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidHostToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidHostToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return fmt.Errorf("%w: wrong issuer", ErrInvalidHostToken)
	}
	if sub, _ := claims["sub"].(string); sub != user {
		return fmt.Errorf("%w: issued to another user", ErrInvalidHostToken)
	}
	if mid, _ := claims[claimMatchID].(string); mid != matchID {
		return fmt.Errorf("%w: issued for another match", ErrInvalidHostToken)
	}
	if role, _ := claims[claimRole].(string); role != roleHost {
		return fmt.Errorf("%w: missing host role", ErrInvalidHostToken)
	}
	return nil
}
