package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type asset struct {
	path        string
	file        string
	contentType string
}

// The page bundle is a fixed set of files; anything else is not found.
var assets = []asset{
	{path: "/", file: "index.html", contentType: "text/html"},
	{path: "/styles.css", file: "styles.css", contentType: "text/css"},
	{path: "/script.js", file: "script.js", contentType: "text/javascript"},
}

func registerAssets(r *gin.Engine, dir string, logger *zerolog.Logger) {
	for _, a := range assets {
		r.GET(a.path, assetHandler(filepath.Join(dir, a.file), a.contentType, logger))
	}
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Unknown route")
	})
}

func assetHandler(path, contentType string, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("read asset")
			c.String(http.StatusInternalServerError, "asset unavailable")
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}
