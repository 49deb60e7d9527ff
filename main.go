package main

import (
	auth "Resonator/internal/auth"
	autodesign "Resonator/internal/calc/autodesign"
	batch "Resonator/internal/calc/batch"
	bowl "Resonator/internal/calc/bowl"
	export "Resonator/internal/calc/export"
	importer "Resonator/internal/calc/importer"
	profile "Resonator/internal/calc/profile"
	recommend "Resonator/internal/calc/recommend"
	report "Resonator/internal/calc/report"
	tone "Resonator/internal/calc/tone"
	config "Resonator/internal/config"
	share "Resonator/internal/share"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config) {
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	guard := auth.NewKeyGuard(cfg.APIKeyHash)
	if !guard.Enabled() {
		slog.Warn("API_KEY_HASH not set, /api/tools is open")
	}
	if cfg.ShareKey == "" {
		slog.Warn("SHARE_KEY not set, share links disabled")
	}

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	bowlH := &bowl.Handler{}
	batchH := &batch.Handler{}
	profileH := &profile.Handler{}
	fitH := &autodesign.Handler{}
	recommendH := &recommend.Handler{}
	shareH := &share.Handler{Signer: share.NewSigner([]byte(cfg.ShareKey), cfg.ShareTTL)}

	api.HandleFunc("/metals", bowlH.Metals).Methods("GET")
	api.HandleFunc("/bowl/calc", bowlH.Calc).Methods("POST")
	api.HandleFunc("/bowl/batch", batchH.Bowl).Methods("POST")
	api.HandleFunc("/bowl/profile", profileH.Calc).Methods("POST")
	api.HandleFunc("/bowl/fit", fitH.Fit).Methods("POST")
	api.HandleFunc("/bowl/recommend", recommendH.Pitch).Methods("POST")
	api.HandleFunc("/bowl/share", shareH.Create).Methods("POST")
	api.HandleFunc("/bowl/share/{token}", shareH.Open).Methods("GET")

	tools := api.PathPrefix("/tools").Subrouter()
	tools.Use(guard.Middleware)

	reportH := &report.Handler{}
	exportH := &export.Handler{}
	importH := &importer.Handler{}
	toneH := &tone.Handler{SampleRate: cfg.ToneSampleRate, Duration: cfg.ToneDuration}

	tools.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")
	tools.HandleFunc("/export/xlsx", exportH.Generate).Methods("POST")
	tools.HandleFunc("/import/xlsx", importH.Bowl).Methods("POST")
	tools.HandleFunc("/tone/wav", toneH.Generate).Methods("POST")

	mux.PathPrefix("/").
		Handler(http.FileServer(http.Dir(cfg.StaticDir)))
}

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := mux.NewRouter()
	HandleList(mux, cfg)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("starting server", "addr", cfg.Addr, "tls", cfg.TLS())
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")

	wg.Wait()
}
