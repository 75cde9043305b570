package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quotewatch/internal/config"
	"quotewatch/internal/fetch"
	"quotewatch/internal/httpx"
	"quotewatch/internal/provider/cache"
	"quotewatch/internal/provider/hexun"
	"quotewatch/internal/provider/ratelimit"
	"quotewatch/internal/quote"
	"quotewatch/internal/security"
	"quotewatch/internal/watchlist"
)

type quotesResponse struct {
	Results []quote.Result `json:"results"`
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	secs, err := watchlist.Load(cfg.Watchlist)
	if err != nil {
		log.Fatalf("watchlist: %v", err)
	}
	if len(secs) == 0 {
		log.Printf("warning: watchlist %s is empty", cfg.Watchlist)
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec)*time.Second, cfg.Hexun.UserAgent)
	var qc quote.Client = hexun.NewClient(hexun.WithHTTPClient(httpClient))
	// Prefer token bucket with burst if RPM is set, otherwise use min-interval
	if cfg.Hexun.MaxRequestsPerMinute > 0 {
		rate := float64(cfg.Hexun.MaxRequestsPerMinute) / 60.0
		burst := cfg.Hexun.Burst
		if burst <= 0 {
			burst = 1
		}
		qc = &ratelimit.TokenBucketClient{C: qc, TB: ratelimit.NewTokenBucket(rate, burst)}
	} else if cfg.Hexun.MinRequestIntervalSec > 0 {
		qc = &ratelimit.MinInterval{C: qc, Interval: time.Duration(cfg.Hexun.MinRequestIntervalSec) * time.Second}
	}
	if cfg.Hexun.CacheTTLSeconds > 0 {
		qc = &cache.Client{C: qc, TTL: time.Duration(cfg.Hexun.CacheTTLSeconds) * time.Second, MaxItems: cfg.Hexun.CacheMaxItems}
	}
	fetcher := &fetch.Orchestrator{Client: qc, MaxConcurrency: cfg.Hexun.MaxConcurrency}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/quotes", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeQuotes(w, r.Context(), fetcher, secs)
		case http.MethodPost:
			handlePostQuotes(w, r, fetcher)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           withJSONHeaders(recoverPanic(limitBody(mux))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func handlePostQuotes(w http.ResponseWriter, r *http.Request, fetcher quote.Fetcher) {
	var secs []security.Security
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&secs); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(secs) == 0 {
		http.Error(w, "securities cannot be empty", http.StatusBadRequest)
		return
	}
	if len(secs) > 1000 {
		http.Error(w, "too many securities (max 1000)", http.StatusBadRequest)
		return
	}
	writeQuotes(w, r.Context(), fetcher, secs)
}

func writeQuotes(w http.ResponseWriter, rctx context.Context, fetcher quote.Fetcher, secs []security.Security) {
	ctx, cancel := context.WithTimeout(rctx, 15*time.Second)
	defer cancel()
	results := fetcher.Fetch(ctx, secs)
	for _, r := range results {
		if r.Err != nil {
			log.Printf("%s: %v", r.Security.Name, r.Err)
		}
	}
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(quotesResponse{Results: results})
}

func withJSONHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		// Basic CORS for browser usage; adjust as needed.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// limitBody caps request body size to avoid memory abuse.
func limitBody(next http.Handler) http.Handler {
	const maxBody = 1 << 20 // 1MB
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		}
		next.ServeHTTP(w, r)
	})
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
