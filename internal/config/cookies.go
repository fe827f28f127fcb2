package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"
)

// Cookies issues and parses the auth cookie pair: the JWT header+payload in
// a js-readable cookie and the signature in an http-only one.
type Cookies struct {
	Domain   string `env:"COOKIES_DOMAIN,required"`
	Secure   bool   `env:"COOKIES_SECURE,required"`
	SameSite http.SameSite
	jwt      *JWT
}

type PlayerClaims struct {
	PlayerID int64  `json:"player_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewPlayerClaims(playerID int64, username string) *PlayerClaims {
	return &PlayerClaims{
		PlayerID: playerID,
		Username: username,
	}
}

func NewCookies(jwt *JWT) (*Cookies, error) {
	var cfg Cookies
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	cfg.SameSite = http.SameSiteStrictMode
	switch strings.ToUpper(envOr("COOKIES_SAMESITE", "STRICT")) {
	case "DEFAULT":
		cfg.SameSite = http.SameSiteDefaultMode
	case "LAX":
		cfg.SameSite = http.SameSiteLaxMode
	case "NONE":
		cfg.SameSite = http.SameSiteNoneMode
	}

	cfg.jwt = jwt
	return &cfg, nil
}

func (c *Cookies) pair(value, signature string, maxAge time.Duration) []*http.Cookie {
	expires := time.Now().Add(maxAge)
	return []*http.Cookie{
		{
			Name:     "auth",
			Path:     "/",
			Value:    value,
			Expires:  expires,
			Domain:   c.Domain,
			Secure:   c.Secure,
			SameSite: c.SameSite,
		},
		{
			Name:     "sign",
			Path:     "/",
			Value:    signature,
			Expires:  expires,
			HttpOnly: true,
			Domain:   c.Domain,
			Secure:   c.Secure,
			SameSite: c.SameSite,
		},
	}
}

// Authorize signs claims for the configured token lifetime and installs the
// cookie pair.
func (c *Cookies) Authorize(w http.ResponseWriter, claims *PlayerClaims) error {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.jwt.tokenLifetime))
	token, err := c.jwt.Sign(claims)
	if err != nil {
		return err
	}
	return c.Refresh(w, token)
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	for _, cookie := range c.pair("delete", "delete", 0) {
		cookie.Expires = time.Time{}
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
}

func (c *Cookies) Refresh(w http.ResponseWriter, token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	header, payload, signature := parts[0], parts[1], parts[2]
	for _, cookie := range c.pair(header+"."+payload, signature, c.jwt.tokenLifetime) {
		http.SetCookie(w, cookie)
	}
	return nil
}

func (c *Cookies) ParsePlayerClaims(r *http.Request) (*PlayerClaims, error) {
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return nil, err
	}
	signCookie, err := r.Cookie("sign")
	if err != nil {
		return nil, err
	}
	token, err := c.jwt.ParseWithClaims(
		authCookie.Value+"."+signCookie.Value, &PlayerClaims{},
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*PlayerClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
