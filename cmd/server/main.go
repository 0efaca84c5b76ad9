package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ticketline/ticket-shop/internal/config"
	"github.com/ticketline/ticket-shop/internal/database"
	"github.com/ticketline/ticket-shop/internal/handler"
	"github.com/ticketline/ticket-shop/internal/middleware"
	"github.com/ticketline/ticket-shop/internal/queue"
	"github.com/ticketline/ticket-shop/internal/repository"
	"github.com/ticketline/ticket-shop/internal/router"
	"github.com/ticketline/ticket-shop/internal/service"
	"github.com/ticketline/ticket-shop/migrations"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrations.Apply(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrations: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()

	tx := repository.NewTxManager(db)
	tickets := repository.NewTicketRepo(db)
	bookings := repository.NewBookingRepo(db)
	events := repository.NewEventRepo(db)
	users := repository.NewUserRepo(db)

	bookingSvc := service.NewBookingService(tx, tickets, bookings, service.NewBookingPublisher())

	h := router.Handlers{
		Ticket:  handler.NewTicketHandler(tickets),
		Booking: handler.NewBookingHandler(bookingSvc),
		Event:   handler.NewEventHandler(events),
		User:    handler.NewUserHandler(users),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e, h, cache, limit)

	go queue.StartBookingConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
