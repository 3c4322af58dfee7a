package authtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gymstack/gymhub/pkg/types"
)

const issuer = "gymhub-api"

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongNamespace = errors.New("token namespace mismatch")
	ErrEmptySecret    = errors.New("jwt secret cannot be empty")
)

// Claims carries the principal identity. Namespace pins the token to one of
// the three credential spaces; a member token never authenticates a staff
// route even when signed with the same secret.
type Claims struct {
	PrincipalID uint                 `json:"principal_id"`
	Namespace   types.TokenNamespace `json:"namespace"`
	jwt.RegisteredClaims
}

// Issuer mints and validates tokens for a single namespace.
type Issuer struct {
	namespace types.TokenNamespace
	secret    []byte
	ttl       time.Duration
}

func NewIssuer(namespace types.TokenNamespace, secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{namespace: namespace, secret: []byte(secret), ttl: ttl}, nil
}

func (i *Issuer) Namespace() types.TokenNamespace { return i.namespace }

// Generate signs a bearer token for the given principal id.
func (i *Issuer) Generate(principalID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		PrincipalID: principalID,
		Namespace:   i.namespace,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  []string{string(i.namespace)},
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate parses a bearer token and rejects tokens minted for another
// namespace.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Namespace != i.namespace {
		return nil, ErrWrongNamespace
	}
	return claims, nil
}

// HashPassword hashes a plaintext credential with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hashedPassword, plainPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword)) == nil
}
