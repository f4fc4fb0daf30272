// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"time"

	"tracker/config"
	"tracker/internal/domain/entity"
	"tracker/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// jwtClaims is the wire form of entity.TokenClaims.
type jwtClaims struct {
	Role string `json:"role"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// jwtCodec is a concrete implementation of the TokenCodec interface using HMAC-signed JWTs.
type jwtCodec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// NewJWTCodec builds the codec from the jwt section of the configuration.
func NewJWTCodec(cfg *config.Config) (service.TokenCodec, error) {
	return NewJWTCodecWithClock(cfg.JWT.Secret, cfg.JWT.Algorithm, time.Now)
}

// NewJWTCodecWithClock builds a codec whose expiry checks use now.
func NewJWTCodecWithClock(secret, algorithm string, now func() time.Time) (service.TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	method, err := signingMethod(algorithm)
	if err != nil {
		return nil, err
	}

	return &jwtCodec{
		secret: []byte(secret),
		method: method,
		now:    now,
	}, nil
}

func signingMethod(algorithm string) (jwt.SigningMethod, error) {
	switch algorithm {
	case config.AlgorithmHS256:
		return jwt.SigningMethodHS256, nil
	case config.AlgorithmHS384:
		return jwt.SigningMethodHS384, nil
	case config.AlgorithmHS512:
		return jwt.SigningMethodHS512, nil
	default:
		return nil, errors.Errorf("unsupported signing algorithm: %s", algorithm)
	}
}

// Encode signs the claims.
func (c *jwtCodec) Encode(claims entity.TokenClaims) (string, error) {
	wire := jwtClaims{
		Role: claims.Role.String(),
		Type: string(claims.Kind),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.ID,
			Subject:   strconv.FormatInt(claims.Subject, 10),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(c.method, wire).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return token, nil
}

// Decode verifies signature and expiry.
func (c *jwtCodec) Decode(token string) (*entity.TokenClaims, error) {
	return c.parse(token,
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
}

// Inspect verifies the signature only.
func (c *jwtCodec) Inspect(token string) (*entity.TokenClaims, error) {
	return c.parse(token, jwt.WithoutClaimsValidation())
}

func (c *jwtCodec) parse(token string, opts ...jwt.ParserOption) (*entity.TokenClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{c.method.Alg()}))

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, c.keyFunc, opts...)
	if err != nil {
		// Signatures are verified before claims, so an expiry error implies a trusted signature.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.WithStack(service.ErrTokenExpired)
		}

		return nil, errors.Wrap(service.ErrTokenMalformed, err.Error())
	}

	wire, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return nil, errors.WithStack(service.ErrTokenMalformed)
	}

	return toTokenClaims(wire)
}

func (c *jwtCodec) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}

	return c.secret, nil
}

func toTokenClaims(wire *jwtClaims) (*entity.TokenClaims, error) {
	subject, err := strconv.ParseInt(wire.Subject, 10, 64)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenMalformed, "subject is not a user id")
	}

	claims := &entity.TokenClaims{
		ID:      wire.ID,
		Subject: subject,
		Role:    entity.Role(wire.Role),
		Kind:    entity.TokenKind(wire.Type),
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}
	if wire.ExpiresAt != nil {
		claims.ExpiresAt = wire.ExpiresAt.Time
	}

	return claims, nil
}
