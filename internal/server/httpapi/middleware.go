package httpapi

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rechunk/rechunk/internal/errs"
	"github.com/rechunk/rechunk/internal/model"
)

// keyKind selects which project credential a route requires. Read and write are
// distinct capabilities; a read key never satisfies a write-scoped route.
type keyKind int

const (
	readKey keyKind = iota
	writeKey
	anyKey
)

const projectCtxKey = "rechunk.project"

// projectFrom returns the credential-verified project stored by the middleware.
// It is the only legitimate source of a trusted project for handlers.
func projectFrom(c *gin.Context) *model.Project {
	return c.MustGet(projectCtxKey).(*model.Project)
}

// requireAdmin gates a route behind the process-wide admin basic-auth pair.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !equal(user, s.adminUser) || !equal(pass, s.adminPass) {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

// requireProjectKey authenticates a project credential pair: the basic-auth
// username is the project id, the password the candidate key. On success the
// verified project is stored in the request context; every downstream operation
// scopes by it, never by path parameters alone.
func (s *Server) requireProjectKey(kind keyKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, candidate, ok := c.Request.BasicAuth()
		if !ok || projectID == "" || candidate == "" {
			unauthorized(c)
			return
		}

		p, err := s.projects.Get(c.Request.Context(), projectID)
		if err != nil {
			// A missing project and a bad key are indistinguishable to callers.
			if !errors.Is(err, errs.ErrNotFound) {
				s.log.Error("project lookup", zap.Error(err))
			}
			unauthorized(c)
			return
		}

		switch kind {
		case readKey:
			ok = equal(candidate, p.ReadKey)
		case writeKey:
			ok = equal(candidate, p.WriteKey)
		case anyKey:
			ok = equal(candidate, p.ReadKey) || equal(candidate, p.WriteKey)
		}
		if !ok {
			unauthorized(c)
			return
		}

		c.Set(projectCtxKey, p)
		c.Next()
	}
}

// equal is a constant-time string comparison.
func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="rechunk"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errs.ErrUnauthorized.Error()})
}

// logging emits one structured line per request: metadata only, never payloads.
func (s *Server) logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		s.log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("peer", c.ClientIP()),
		)
	}
}

// recovery converts handler panics into 500 responses.
func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal"})
			}
		}()
		c.Next()
	}
}
