//go:build !embed
// +build !embed

package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const staticDir = "./cmd/server/web/static"

// setupStaticFiles serves assets from the working tree
func setupStaticFiles(router *gin.Engine, logger *zap.Logger) {
	logger.Debug("using local filesystem for static assets", zap.String("dir", staticDir))
	router.Static("/static", staticDir)
}
