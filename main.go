package main

import (
	"context"
	"fmt"
	"log"

	"github.com/BeeBeBong/Emenu/configs"
	"github.com/BeeBeBong/Emenu/pkg/logger"
	"github.com/BeeBeBong/Emenu/routes"
	"github.com/BeeBeBong/Emenu/services"
	"github.com/BeeBeBong/Emenu/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()
	lg := logger.New(cfg.LogLevel, cfg.LogFormat)

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()
	configs.SetupDatabase()

	if err := configs.SeedAdmin(cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedTables(cfg.TableCount); err != nil {
		log.Fatalf("seed tables failed: %v", err)
	}

	// Reservation holds lapse on read; the sweeper catches tables
	// nobody looks at.
	tables := services.NewTableService(db, cfg.ReserveHold, lg)
	tables.StartSweeper(context.Background(), cfg.SweepInterval)

	// Notification push for the dashboard bell
	hub := ws.NewNotifyHub()
	go hub.Run()

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, db, cfg, lg, hub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	lg.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
