// Package httpapi exposes the ReChunk HTTP API: project provisioning, chunk
// publishing and signed reads, and session-token issuance.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rechunk/rechunk/internal/errs"
	"github.com/rechunk/rechunk/internal/service"
)

// Pinger reports storage connectivity for the readiness endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config collects the dependencies of the HTTP server.
type Config struct {
	Projects service.ProjectService
	Chunks   service.ChunkService
	Tokens   service.TokenService
	Issuer   service.Issuer
	DB       Pinger
	Logger   *zap.Logger

	// AdminUser and AdminPass gate project creation. Process-wide
	// configuration, not request-scoped state.
	AdminUser string
	AdminPass string
}

// Server wires services into HTTP handlers.
type Server struct {
	projects service.ProjectService
	chunks   service.ChunkService
	tokens   service.TokenService
	issuer   service.Issuer
	db       Pinger
	log      *zap.Logger

	adminUser string
	adminPass string
}

// New constructs the HTTP server with injected services.
func New(cfg Config) *Server {
	return &Server{
		projects:  cfg.Projects,
		chunks:    cfg.Chunks,
		tokens:    cfg.Tokens,
		issuer:    cfg.Issuer,
		db:        cfg.DB,
		log:       cfg.Logger,
		adminUser: cfg.AdminUser,
		adminPass: cfg.AdminPass,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.recovery(), s.logging())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/readyz", s.readyz)

		v1.POST("/projects", s.requireAdmin(), s.createProject)
		v1.GET("/projects/:projectId", s.requireProjectKey(anyKey), s.getProject)

		v1.GET("/projects/:projectId/chunks", s.requireProjectKey(anyKey), s.listChunks)
		v1.GET("/projects/:projectId/chunks/:chunkId", s.requireProjectKey(readKey), s.getChunk)
		v1.POST("/projects/:projectId/chunks/:chunkId", s.requireProjectKey(writeKey), s.putChunk)
		v1.DELETE("/projects/:projectId/chunks/:chunkId", s.requireProjectKey(writeKey), s.deleteChunk)

		v1.POST("/token", s.requireProjectKey(writeKey), s.createToken)
		v1.GET("/auth/token", s.authToken)
	}
	return r
}

// readyz reports database connectivity.
func (s *Server) readyz(c *gin.Context) {
	if err := s.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// createProject provisions a new project. This is the only response that ever
// carries the private key and the credential keys together.
func (s *Server) createProject(c *gin.Context) {
	p, err := s.projects.Create(c.Request.Context())
	if err != nil {
		s.abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// getProject returns project metadata without the private key or credentials.
func (s *Server) getProject(c *gin.Context) {
	p := projectFrom(c)
	c.JSON(http.StatusOK, p.Sanitized())
}

// listChunks returns all chunks of the authenticated project.
func (s *Server) listChunks(c *gin.Context) {
	p := projectFrom(c)
	list, err := s.chunks.List(c.Request.Context(), p.ID)
	if err != nil {
		s.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// getChunk returns the payload plus a freshly signed envelope over its digest.
// The chunk lookup is scoped to the credential's project, never the path alone.
func (s *Server) getChunk(c *gin.Context) {
	p := projectFrom(c)
	chunk, err := s.chunks.Get(c.Request.Context(), p.ID, c.Param("chunkId"))
	if err != nil {
		s.abortError(c, err)
		return
	}
	signed, err := s.issuer.Issue(chunk, p.PrivateKey)
	if err != nil {
		s.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, signed)
}

// putChunk upserts a chunk; the request body is the raw payload.
func (s *Server) putChunk(c *gin.Context) {
	p := projectFrom(c)
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.abortError(c, errs.ErrInvalidFormat)
		return
	}
	chunk, err := s.chunks.Put(c.Request.Context(), p.ID, c.Param("chunkId"), data)
	if err != nil {
		s.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, chunk)
}

// deleteChunk removes a chunk; deleting a missing chunk succeeds.
func (s *Server) deleteChunk(c *gin.Context) {
	p := projectFrom(c)
	if err := s.chunks.Delete(c.Request.Context(), p.ID, c.Param("chunkId")); err != nil {
		s.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// createToken issues a single-use session token for the authenticated project.
func (s *Server) createToken(c *gin.Context) {
	p := projectFrom(c)
	tok, err := s.tokens.CreateProjectToken(c.Request.Context(), p.ID)
	if err != nil {
		s.abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// sessionCookie is the dashboard session cookie set on token exchange.
const sessionCookie = "rechunk_session"

// authToken exchanges a (projectId, token) pair for a dashboard session cookie.
// The token is consumed atomically; a replay fails with 404.
func (s *Server) authToken(c *gin.Context) {
	projectID := c.Query("projectId")
	tok := c.Query("token")
	if projectID == "" || tok == "" {
		s.abortError(c, errs.ErrInvalidFormat)
		return
	}
	payload, err := s.tokens.VerifyAndConsume(c.Request.Context(), projectID, tok)
	if err != nil {
		s.abortError(c, err)
		return
	}
	c.SetCookie(sessionCookie, payload.ID, int(service.DefaultTokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, payload)
}

// abortError maps sentinel errors onto HTTP statuses with a structured body.
func (s *Server) abortError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidFormat):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrExpired):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		s.log.Error("internal error", zap.Error(err))
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
