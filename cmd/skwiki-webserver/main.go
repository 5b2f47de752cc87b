// Command skwiki-webserver serves search queries over HTTP against a
// persisted index, reloading it periodically in case the file on disk
// changes underneath it, the way cmd/qrank-webserver reloads its stats
// file on a ticker.
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/melisekm/skwiki-search/internal/config"
	"github.com/melisekm/skwiki-search/internal/metrics"
	"github.com/melisekm/skwiki-search/internal/storage"
)

func main() {
	cfg, err := config.Load("config.json")
	if err != nil {
		log.Fatal(err)
	}

	met, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.NewStorage(cfg.StorageEndpoint, cfg.StorageAccessKey, cfg.StorageSecretKey, cfg.StorageBucket)
	if err != nil {
		log.Fatal(err)
	}

	loader, err := NewIndexLoader(cfg, store, met)
	if err != nil {
		log.Fatal(err)
	}

	ticker := time.NewTicker(30 * time.Second)
	done := make(chan bool)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := loader.Reload(context.Background()); err != nil {
					log.Printf("failed to reload index: %s", err)
				}
			}
		}
	}()

	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/search", HandleSearch(loader))
	log.Printf("listening on %s", cfg.MetricsAddr)
	log.Fatal(http.ListenAndServe(cfg.MetricsAddr, nil))
}
