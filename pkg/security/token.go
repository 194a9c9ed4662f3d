package security

import (
	"errors"
	"fmt"
	"time"

	"boycottwatch/catalog-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// The two token kinds are never interchangeable: they carry independent
// secrets and an explicit kind claim, so a verification token presented
// where a login token is expected fails even if the secrets were ever
// configured to the same value.
const (
	KindLogin        = "login"
	KindVerification = "verification"
)

var (
	ErrMissingSecret  = errors.New("token secret not configured")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// LoginClaims is the wire shape of a login token: {email, id, role}.
type LoginClaims struct {
	jwt.RegisteredClaims
	Email string     `json:"email"`
	ID    uint       `json:"id"`
	Role  model.Role `json:"role"`
	Kind  string     `json:"kind"`
}

// VerificationClaims is the wire shape of an email-verification token.
type VerificationClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Kind  string `json:"kind"`
}

// TokenCodec signs and verifies the two token kinds with independent
// secrets and a shared expiry window.
type TokenCodec struct {
	loginSecret        []byte
	verificationSecret []byte
	expiry             time.Duration
}

func NewTokenCodec(loginSecret, verificationSecret []byte, expiry time.Duration) (*TokenCodec, error) {
	if len(loginSecret) == 0 || len(verificationSecret) == 0 {
		return nil, ErrMissingSecret
	}

	if expiry <= 0 {
		return nil, errors.New("token expiry must be bigger than 0")
	}

	return &TokenCodec{
		loginSecret:        loginSecret,
		verificationSecret: verificationSecret,
		expiry:             expiry,
	}, nil
}

// TokenCodecFromConfig builds a codec from the jwt.* config keys. Missing
// secrets are a fatal startup condition, never a per-request error.
func TokenCodecFromConfig() (*TokenCodec, error) {
	return NewTokenCodec(
		[]byte(viper.GetString("jwt.login_secret")),
		[]byte(viper.GetString("jwt.verification_secret")),
		viper.GetDuration("jwt.expiry"),
	)
}

func (t *TokenCodec) IssueLoginToken(email string, id uint, role model.Role) (string, error) {
	now := time.Now()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, LoginClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
		Email: email,
		ID:    id,
		Role:  role,
		Kind:  KindLogin,
	})

	return tok.SignedString(t.loginSecret)
}

func (t *TokenCodec) IssueVerificationToken(email string) (string, error) {
	now := time.Now()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, VerificationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
		Email: email,
		Kind:  KindVerification,
	})

	return tok.SignedString(t.verificationSecret)
}

// VerifyLoginToken parses and checks a login token. Expired tokens are
// reported as ErrTokenExpired so callers can observe them separately from
// signature failures.
func (t *TokenCodec) VerifyLoginToken(raw string) (*LoginClaims, error) {
	claims := &LoginClaims{}

	if err := t.verify(raw, claims, t.loginSecret); err != nil {
		return nil, err
	}

	if claims.Kind != KindLogin {
		return nil, ErrWrongTokenKind
	}

	return claims, nil
}

func (t *TokenCodec) VerifyVerificationToken(raw string) (*VerificationClaims, error) {
	claims := &VerificationClaims{}

	if err := t.verify(raw, claims, t.verificationSecret); err != nil {
		return nil, err
	}

	if claims.Kind != KindVerification {
		return nil, ErrWrongTokenKind
	}

	return claims, nil
}

func (t *TokenCodec) verify(raw string, claims jwt.Claims, secret []byte) error {
	tok, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (any, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", tok.Method.Alg())
		}

		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return ErrTokenMalformed
		default:
			return ErrTokenInvalid
		}
	}

	if !tok.Valid {
		return ErrTokenInvalid
	}

	return nil
}
