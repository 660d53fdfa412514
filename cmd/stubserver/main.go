package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"optimus-bench/internal/api"
)

// stubserver stands in for the OptimusV2 execution API so the bench tool can
// be exercised without a cluster. It accepts every well-formed job, answers
// with a fresh job_id, and can inject artificial latency and failures.

var requestCount uint64

func executeHandler(delay time.Duration, failEvery uint64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var spec api.JobSpec
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if spec.SourceCode == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(api.SubmitResponse{Error: "source_code cannot be empty"})
			return
		}

		if delay > 0 {
			time.Sleep(delay)
		}

		n := atomic.AddUint64(&requestCount, 1)
		if failEvery > 0 && n%failEvery == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(api.SubmitResponse{Error: "queue full"})
			return
		}

		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(api.SubmitResponse{
			JobID:  uuid.NewString(),
			Status: "queued",
		})
	}
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	delay := flag.Duration("delay", 0, "artificial latency per request")
	failEvery := flag.Uint64("fail-every", 0, "return 503 for every Nth request (0 = never)")
	flag.Parse()

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/execute", executeHandler(*delay, *failEvery))

	server := &http.Server{
		Addr:    *addr,
		Handler: mux,
	}

	go func() {
		log.Infof("stub server listening on %s", *addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down stub server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	}
}
