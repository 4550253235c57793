package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"creme-menu/internal/config"
	"creme-menu/internal/httpx/mw"
)

const refreshCookie = "refresh_token"

// Claims represents JWT claims used by this service.
type Claims struct {
	Kind  string   `json:"kind"`
	Roles []string `json:"roles,omitempty"`
	Perms []string `json:"perms,omitempty"`
	jwt.RegisteredClaims
}

// Principal is who a token is issued for.
type Principal struct {
	Subject string
	Roles   []string
	Perms   []string
}

type tokenKeys struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
}

func loadKeys(cfg *config.Config) (*tokenKeys, error) {
	hs := &tokenKeys{method: jwt.SigningMethodHS256, signKey: []byte(cfg.JWT.HSSecret), verifyKey: []byte(cfg.JWT.HSSecret)}
	switch cfg.JWT.Algo {
	case "RS256":
		if cfg.JWT.RSPrivateKey == "" || cfg.JWT.RSPublicKey == "" {
			return hs, nil
		}
		priv, err := parseRSAPrivateKeyFromPEM([]byte(cfg.JWT.RSPrivateKey))
		if err != nil {
			return nil, err
		}
		pub, err := parseRSAPublicKeyFromPEM([]byte(cfg.JWT.RSPublicKey))
		if err != nil {
			return nil, err
		}
		return &tokenKeys{method: jwt.SigningMethodRS256, signKey: priv, verifyKey: pub}, nil
	case "HS256", "":
		return hs, nil
	default:
		return nil, errors.New("unsupported JWT_ALGO")
	}
}

func parseRSAPrivateKeyFromPEM(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("invalid RSA private PEM")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	k8, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := k8.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("unsupported PKCS8 private key type")
	}
	return key, nil
}

func parseRSAPublicKeyFromPEM(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("invalid RSA public PEM")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("unsupported public key type")
	}
	return key, nil
}

func sign(cfg *config.Config, p Principal, ttl time.Duration, withGrants bool) (string, error) {
	keys, err := loadKeys(cfg)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	claims := &Claims{
		Kind: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWT.Issuer,
			Audience:  jwt.ClaimStrings{cfg.JWT.Audience},
			Subject:   p.Subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if withGrants {
		claims.Roles, claims.Perms = p.Roles, p.Perms
	}
	return jwt.NewWithClaims(keys.method, claims).SignedString(keys.signKey)
}

// SignAccess issues a short-lived access token carrying roles and perms.
func SignAccess(cfg *config.Config, p Principal) (string, error) {
	return sign(cfg, p, time.Duration(cfg.JWT.AccessMin)*time.Minute, true)
}

// SignRefresh issues a long-lived refresh token. Grants are looked up again
// on refresh.
func SignRefresh(cfg *config.Config, p Principal) (string, error) {
	return sign(cfg, p, time.Duration(cfg.JWT.RefreshDays)*24*time.Hour, false)
}

// ParseAndValidate verifies a token string and returns claims.
func ParseAndValidate(cfg *config.Config, tokenStr string) (*Claims, error) {
	keys, err := loadKeys(cfg)
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{keys.method.Alg()}),
		jwt.WithIssuer(cfg.JWT.Issuer),
		jwt.WithAudience(cfg.JWT.Audience),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) { return keys.verifyKey, nil })
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Parser adapts ParseAndValidate to the JWT middleware, reading the current
// configuration on every call.
func Parser(cfg func() *config.Config) mw.TokenParser {
	return func(token string) (*mw.AuthContext, error) {
		claims, err := ParseAndValidate(cfg(), token)
		if err != nil {
			return nil, err
		}
		return &mw.AuthContext{Subject: claims.Subject, Kind: claims.Kind, Roles: claims.Roles, Perms: claims.Perms}, nil
	}
}

// SetRefreshCookie sets the refresh token as HttpOnly cookie.
func SetRefreshCookie(c *fiber.Ctx, token string, ttlDays int) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: "Lax",
		Path:     "/",
		MaxAge:   ttlDays * 24 * 60 * 60,
	})
}

// ClearRefreshCookie clears the refresh cookie.
func ClearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{Name: refreshCookie, Value: "", MaxAge: -1, Path: "/"})
}
