package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// cookieStorage keeps client identity in HttpOnly cookies. Values set during
// a request are visible to later reads in the same request.
type cookieStorage struct {
	c       *gin.Context
	secure  bool
	pending map[string]string
}

func newCookieStorage(c *gin.Context, secure bool) *cookieStorage {
	return &cookieStorage{c: c, secure: secure, pending: make(map[string]string)}
}

func (s *cookieStorage) Get(key string) string {
	if v, ok := s.pending[key]; ok {
		return v
	}
	v, err := s.c.Cookie(key)
	if err != nil {
		return ""
	}
	return v
}

func (s *cookieStorage) Set(key, value string) {
	s.pending[key] = value
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, value, 0, "/", "", s.secure, true)
}

func (s *cookieStorage) Remove(key string) {
	s.pending[key] = ""
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, "", -1, "/", "", s.secure, true)
}
