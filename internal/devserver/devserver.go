// Package devserver implements the local development stand-in for the hosted
// API: it serves chunks straight from the files mapped in rechunk.json, signs
// them with the project's private key using the exact production envelope, and
// skips authentication entirely. The production client verifier accepts its
// responses unchanged.
package devserver

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rechunk/rechunk/internal/model"
	"github.com/rechunk/rechunk/internal/projectcfg"
	"github.com/rechunk/rechunk/internal/sign"
)

// DefaultPort is the port the client tooling expects a local dev server on.
const DefaultPort = 49904

// Handler serves the chunk read route from local files.
func Handler(cfg *projectcfg.Config, log *zap.Logger) http.Handler {
	r := gin.New()

	r.GET("/api/v1/projects/:projectId/chunks/:chunkId", func(c *gin.Context) {
		chunkID := c.Param("chunkId")
		log.Info("serving chunk",
			zap.String("project", c.Param("projectId")),
			zap.String("chunk", chunkID),
		)

		entry, ok := cfg.Entry[chunkID]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown chunk id"})
			return
		}

		data, err := os.ReadFile(filepath.Clean(entry))
		if err != nil {
			log.Error("read entry", zap.String("chunk", chunkID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read chunk source"})
			return
		}

		env, err := sign.Sign(data, cfg.PrivateKey)
		if err != nil {
			log.Error("sign chunk", zap.String("chunk", chunkID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "signing failure"})
			return
		}

		c.JSON(http.StatusOK, model.SignedChunk{Data: string(data), Token: env})
	})

	return r
}
