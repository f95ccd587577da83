package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"homefinder/internal/config"
	"homefinder/internal/handler"
	"homefinder/internal/logging"
	"homefinder/internal/view"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	gin.SetMode(rt.cfg.Server.GinMode)

	router, err := newRouter(rt.cfg, rt.listings, rt.logger)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", rt.cfg.Server.Host, rt.cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("version", Version),
			zap.String("git_commit", GitCommit),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	rt.logger.Info("server stopped")
	return nil
}

// newRouter wires pages, the JSON API, ops endpoints and static assets
func newRouter(cfg *config.Config, listings handler.ListingFinder, logger *zap.Logger) (*gin.Engine, error) {
	tmpl, err := view.New()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), logging.Middleware(logger))
	router.SetHTMLTemplate(tmpl)

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = nil
	for _, origin := range strings.Split(cfg.Server.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
		}
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", logging.RequestIDHeader}

	router.Use(cors.New(corsConfig))

	site := view.Site{
		Name:                cfg.Site.Name,
		FallbackDescription: cfg.Site.FallbackDescription,
		HeroImageURL:        cfg.Site.HeroImageURL,
	}
	pages := handler.NewPageHandler(listings, site, cfg.Content.QueryTimeout, logger)
	api := handler.NewAPIHandler(listings, cfg.Content.QueryTimeout, logger)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "homefinder",
			"backend":    cfg.Content.Backend,
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Pages
	router.GET("/", pages.Home)
	router.GET("/property", pages.Browse)
	router.GET("/property/:slug", pages.Detail)

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/listings", api.List)
		apiV1.GET("/listings/:slug", api.Get)
	}

	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router, logger)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			api.NotFound(c)
			return
		}
		pages.NotFound(c)
	})

	return router, nil
}
