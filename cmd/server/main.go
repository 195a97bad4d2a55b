package main

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hi5-laundry/api/internal/config"
	"github.com/hi5-laundry/api/internal/domain"
	"github.com/hi5-laundry/api/internal/router"
	"github.com/hi5-laundry/api/internal/service"
	"github.com/hi5-laundry/api/internal/settings"
	"github.com/hi5-laundry/api/internal/store"
	"github.com/hi5-laundry/api/internal/ws"
)

func main() {
	cfg := config.Load()
	loc := cfg.Location()

	mem := store.NewMemory()
	shop := settings.NewDefault()

	if cfg.SeedDemo {
		mem.AddStaff(domain.Staff{ID: uuid.NewString(), Name: "Arjun"})
		mem.AddStaff(domain.Staff{ID: uuid.NewString(), Name: "Priya"})
	}

	hub := ws.NewHub()
	go hub.Run()

	// Once-per-second display refresh: recompute the snapshot and push it to
	// connected dashboards. Pure read path; SLA countdowns and pending times
	// are derived client-side from the timestamps it carries.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			snap := service.Recompute(mem.List(), mem.ListStaff(), time.Now(), loc)
			if err := hub.BroadcastJSON("metrics", snap); err != nil {
				log.Printf("ERROR: broadcast metrics: %v", err)
			}
		}
	}()

	r := router.New(cfg, mem, shop, loc, hub)

	log.Printf("Starting server on :%s (timezone %s)", cfg.Port, cfg.Timezone)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
