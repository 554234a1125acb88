package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"platehub/internal/cuisines"
	"platehub/internal/leaderboard"
	"platehub/internal/restaurants"
	"platehub/internal/reviews"
	"platehub/internal/search"
	"platehub/internal/weather"
	"platehub/pkg/responses"
	"platehub/pkg/store"
	"platehub/pkg/utils"
)

func main() {
	storeCfg := store.DefaultConfig()
	rdb := store.MustOpen(storeCfg)
	defer rdb.Close()
	log.Printf("store connected at %s", storeCfg.Addr)

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := rdb.Ping(ctx).Err(); err != nil {
			responses.Error(c, http.StatusServiceUnavailable, "store unreachable")
			return
		}
		responses.Success(c, gin.H{"status": "ok"}, "")
	})

	directory := restaurants.NewRepo(rdb)
	cuisineRepo := cuisines.NewRepo(rdb)
	board := leaderboard.NewBoard(rdb)
	ledger := reviews.NewLedger(rdb)
	coordinator := reviews.NewCoordinator(rdb, directory, ledger, board)

	restaurantGroup := router.Group("/restaurants")
	restaurants.NewHandler(directory, cuisineRepo, board).RegisterRoutes(restaurantGroup)
	reviews.NewHandler(ledger, coordinator, directory).RegisterRoutes(restaurantGroup)
	search.NewHandler(rdb).RegisterRoutes(restaurantGroup)

	weatherClient := weather.NewClient(utils.LoadWeatherConfig())
	weather.NewHandler(rdb, weatherClient, directory).RegisterRoutes(restaurantGroup)

	cuisines.NewHandler(cuisineRepo).RegisterRoutes(router.Group("/cuisines"))

	serverCfg := utils.LoadServerConfig()
	httpSrv := &http.Server{
		Addr:    serverCfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", serverCfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
