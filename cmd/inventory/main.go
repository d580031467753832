package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/FahriNazarudin/E-commerce/internal/checkout"
	"github.com/FahriNazarudin/E-commerce/internal/config"
	"github.com/FahriNazarudin/E-commerce/internal/inventory"
	kafkax "github.com/FahriNazarudin/E-commerce/internal/kafka"
	"github.com/FahriNazarudin/E-commerce/internal/postgres"
	"github.com/FahriNazarudin/E-commerce/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &inventory.Service{
		Store:       &inventory.Repo{DB: db},
		Dedup:       &redisx.Dedup{R: rdb, TTL: redisx.TTLEventDedup},
		ServiceName: cfg.ServiceName + "-inventory",
	}

	group := getenv("INVENTORY_GROUP", "inventory-svc")
	workers := mustAtoi(os.Getenv("INVENTORY_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, checkout.TopicOrderPaid, workers)

	go func() {
		log.Printf("inventory consumer started: group=%s topic=%s workers=%d", group, checkout.TopicOrderPaid, workers)
		if err := cons.Start(ctx, svc.HandleOrderPaid); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
