// Package sessioncookie backs the session store's durable storage with a
// signed cookie pair. Each entry is one cookie; the value format is
// base64(payload).base64(hmac) so the user record (JSON) survives cookie
// encoding intact.
package sessioncookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/session"
)

var ErrInvalid = errors.New("invalid session cookie")

const cookiePrefix = "genezis_"

type Codec struct {
	Secret []byte
	Secure bool
	TTL    time.Duration
}

func New(secret []byte, secure bool) *Codec {
	return &Codec{Secret: secret, Secure: secure, TTL: 48 * time.Hour}
}

func (c *Codec) Encode(payload string) string {
	p := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return p + "." + sign(c.Secret, p)
}

// Decode returns the signed payload. A value that is not in the signed
// format comes back verbatim: the session store owns the handling of legacy
// sentinels ("undefined") and of content that fails to parse.
func (c *Codec) Decode(v string) (string, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 {
		return v, nil
	}
	if !verify(c.Secret, parts[0], parts[1]) {
		return "", ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrInvalid
	}
	return string(raw), nil
}

// Storage binds the codec to one request, yielding the two-entry durable
// storage the session store expects. Writes go out as Set-Cookie headers and
// are overlaid locally so a read in the same request sees them.
func (c *Codec) Storage(ctx *gin.Context) session.Storage {
	return &requestStorage{codec: c, ctx: ctx, overlay: map[string]string{}, deleted: map[string]bool{}}
}

type requestStorage struct {
	codec   *Codec
	ctx     *gin.Context
	overlay map[string]string
	deleted map[string]bool
}

func (s *requestStorage) cookieName(key string) string { return cookiePrefix + key }

func (s *requestStorage) Get(key string) (string, bool) {
	if s.deleted[key] {
		return "", false
	}
	if v, ok := s.overlay[key]; ok {
		return v, true
	}
	raw, err := s.ctx.Cookie(s.cookieName(key))
	if err != nil || raw == "" {
		return "", false
	}
	payload, err := s.codec.Decode(raw)
	if err != nil {
		// Tampered cookie: surface garbage so the store discards the session.
		return raw, true
	}
	return payload, true
}

func (s *requestStorage) Set(key, value string) {
	delete(s.deleted, key)
	s.overlay[key] = value
	s.ctx.SetSameSite(http.SameSiteLaxMode)
	s.ctx.SetCookie(s.cookieName(key), s.codec.Encode(value), int(s.codec.TTL.Seconds()), "/", "", s.codec.Secure, true)
}

func (s *requestStorage) Delete(key string) {
	delete(s.overlay, key)
	s.deleted[key] = true
	s.ctx.SetSameSite(http.SameSiteLaxMode)
	s.ctx.SetCookie(s.cookieName(key), "", -1, "/", "", s.codec.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
