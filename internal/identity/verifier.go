// Package identity adapts the external identity collaborator. The engine
// never manages accounts or sessions; it consumes signed bearer tokens issued
// elsewhere and reduces their role claims to the two privilege tiers the
// reservation decisions distinguish.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/campus-reservations/internal/application"
)

var (
	// ErrInvalidToken is returned when a token fails signature, expiry, or
	// claim validation.
	ErrInvalidToken = errors.New("identity: invalid token")
)

// Role names used by the identity collaborator. Faculty and admin both
// collapse to the elevated tier.
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// Claims is the token payload the collaborator signs.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 bearer tokens against the shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier constructs a verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a bearer token and returns the principal it
// carries.
func (v *Verifier) Verify(token string) (application.Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return application.Principal{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return application.Principal{}, ErrInvalidToken
	}

	privilege, err := privilegeForRole(claims.Role)
	if err != nil {
		return application.Principal{}, err
	}

	return application.Principal{UserID: claims.Subject, Privilege: privilege}, nil
}

func privilegeForRole(role string) (application.Privilege, error) {
	switch role {
	case RoleStudent:
		return application.PrivilegeOrdinary, nil
	case RoleFaculty, RoleAdmin:
		return application.PrivilegeElevated, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidToken, role)
}

// Mint signs a token for the given subject and role. It exists for the
// tokengen command and for tests; the production issuer is the external
// identity service.
func Mint(secret, subject, role string, ttl time.Duration, now time.Time) (string, error) {
	if _, err := privilegeForRole(role); err != nil {
		return "", err
	}

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
