package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/config"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/cleanup"
	"github.com/iamasit07/connect4/internal/service/game"
	transportHttp "github.com/iamasit07/connect4/internal/transport/http"
	"github.com/iamasit07/connect4/internal/transport/http/middleware"
	"github.com/iamasit07/connect4/internal/transport/websocket"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// fail at startup rather than on the first POST /api/games
	if _, _, err := domain.ParseDimensions(cfg.BoardHeight, cfg.BoardWidth); err != nil {
		log.Fatalf("Invalid default board size: %v", err)
	}
	if _, err := game.NewPalette(cfg.Player1Color, cfg.Player2Color); err != nil {
		log.Fatalf("Invalid default colors: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connManager := websocket.NewConnectionManager()
	sessionManager := game.NewSessionManager(connManager)

	cleanupWorker := cleanup.NewWorker(sessionManager, connManager, cfg.CleanupInterval, cfg.SessionIdleTTL)
	go cleanupWorker.Start(ctx)

	gameHandler := transportHttp.NewGameHandler(sessionManager, connManager,
		cfg.BoardHeight, cfg.BoardWidth, [2]string{cfg.Player1Color, cfg.Player2Color})
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.AllowedOrigins)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	gameHandler.Register(router)
	router.GET("/ws", wsHandler.HandleWebSocket)

	// Serve the board page if one was built next to the binary
	if _, err := os.Stat(cfg.StaticDir); err == nil {
		router.Static("/assets", cfg.StaticDir+"/assets")
		router.GET("/", func(c *gin.Context) {
			c.File(cfg.StaticDir + "/index.html")
		})
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.File(cfg.StaticDir + "/index.html")
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
