//go:build embed
// +build embed

package main

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed web/static
var webStatic embed.FS

// setupStaticFiles serves the stylesheet and filter script from the binary
func setupStaticFiles(router *gin.Engine, logger *zap.Logger) {
	logger.Info("using embedded static assets")

	staticFS, err := fs.Sub(webStatic, "web/static")
	if err != nil {
		logger.Fatal("failed to get static subdirectory", zap.Error(err))
	}
	router.StaticFS("/static", http.FS(staticFS))
}
