package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "backend/internal/config"
	api "backend/internal/http"
	"backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	st, cleanup, err := buildStore(env)
	if err != nil {
		log.Fatalf("Gagal menyiapkan store (%s): %v", env.StoreDriver, err)
	}
	defer cleanup()

	r := api.NewRouter(env, st)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s (store=%s)", env.AppAddr, env.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}

// buildStore selects the row-store backend from STORE_DRIVER. The memory
// driver gets the demo catalog so the app works with zero setup.
func buildStore(env intconfig.Env) (store.Store, func(), error) {
	switch env.StoreDriver {
	case "mysql":
		db := intconfig.ConnectDB(env.MySQLDSN)
		s := store.NewSQLStore(db)
		if err := s.EnsureSchema(); err != nil {
			return nil, func() {}, err
		}
		return s, intconfig.CloseDB, nil

	case "supabase":
		s, err := store.NewRestStore(env.SupabaseURL, env.SupabaseKey)
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() {}, nil

	default:
		s := store.NewMemoryStore()
		if err := store.Seed(context.Background(), s); err != nil {
			return nil, func() {}, err
		}
		return s, func() {}, nil
	}
}
