package access

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VerificationTTL is how long a stored verification stays valid.
const VerificationTTL = 24 * time.Hour

// Verification is the decoded access flag: an authenticated marker
// plus its creation timestamp in epoch milliseconds.
type Verification struct {
	IsAuthenticated bool  `json:"isAuthenticated"`
	Timestamp       int64 `json:"timestamp"`
}

type verificationClaims struct {
	IsAuthenticated bool  `json:"isAuthenticated"`
	Timestamp       int64 `json:"timestamp"`
	jwt.RegisteredClaims
}

// TokenCodec signs and parses the stored verification flag as an HS256
// token so a tampered or hand-written flag never authenticates.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec creates a codec signing with the given secret.
func NewTokenCodec(secret string, now func() time.Time) *TokenCodec {
	if now == nil {
		now = time.Now
	}
	return &TokenCodec{secret: []byte(secret), now: now}
}

// Sign produces a fresh signed verification flag stamped with the
// codec's current time.
func (c *TokenCodec) Sign() (string, error) {
	now := c.now()
	claims := verificationClaims{
		IsAuthenticated: true,
		Timestamp:       now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(VerificationTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse decodes a stored flag. Any structurally invalid, badly signed
// or expired token is reported as absent (nil, false); it never errors
// into the caller.
func (c *TokenCodec) Parse(token string) (*Verification, bool) {
	var claims verificationClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil, false
	}
	if !claims.IsAuthenticated || claims.Timestamp <= 0 {
		return nil, false
	}

	// The 24h window is anchored on the stored timestamp, independent
	// of whatever exp the token carries.
	age := c.now().Sub(time.UnixMilli(claims.Timestamp))
	if age > VerificationTTL {
		return nil, false
	}

	return &Verification{IsAuthenticated: true, Timestamp: claims.Timestamp}, true
}
