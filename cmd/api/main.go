package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/FahriNazarudin/E-commerce/internal/auth"
	"github.com/FahriNazarudin/E-commerce/internal/cart"
	"github.com/FahriNazarudin/E-commerce/internal/catalog"
	"github.com/FahriNazarudin/E-commerce/internal/chatbot"
	"github.com/FahriNazarudin/E-commerce/internal/checkout"
	"github.com/FahriNazarudin/E-commerce/internal/config"
	"github.com/FahriNazarudin/E-commerce/internal/httpx"
	kafkax "github.com/FahriNazarudin/E-commerce/internal/kafka"
	"github.com/FahriNazarudin/E-commerce/internal/payment"
	"github.com/FahriNazarudin/E-commerce/internal/postgres"
	"github.com/FahriNazarudin/E-commerce/internal/redisx"
	"github.com/FahriNazarudin/E-commerce/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for order.paid
	prod := kafkax.NewProducer(cfg.KafkaBrokers, checkout.TopicOrderPaid, 1024)
	prod.Start(ctx)

	// Repos
	userRepo := &users.Repo{DB: db}
	catalogRepo := &catalog.Repo{DB: db}
	cartRepo := &cart.Repo{DB: db}
	orderRepo := &checkout.Repo{DB: db}

	// Integrations
	gateway := payment.NewMidtrans(cfg.MidtransServerKey, cfg.MidtransProduction)
	tokens := auth.NewTokens(cfg.JWTSecret)

	userSvc := &users.Service{
		Store:  userRepo,
		Google: &users.IDTokenVerifier{Audience: cfg.GoogleClientID},
	}
	checkoutSvc := &checkout.Service{
		Carts:       cartRepo,
		Users:       userRepo,
		Orders:      orderRepo,
		Gateway:     gateway,
		Producer:    prod,
		Dedup:       &redisx.Dedup{R: rdb, TTL: redisx.TTLNotifDedup},
		FrontendURL: cfg.FrontendURL,
		ServiceName: cfg.ServiceName,
	}

	bot := &chatbot.Bot{}
	if cfg.DialogflowProjectID != "" {
		df, err := chatbot.NewDialogflow(ctx, cfg.DialogflowProjectID)
		if err != nil {
			log.Printf("dialogflow disabled: %v", err)
		} else {
			bot.Detector = df
			defer df.Close()
		}
	}

	gate := &auth.Gate{Tokens: tokens, Users: userRepo}
	router := httpx.NewRouter()
	httpx.Register(router, gate,
		&httpx.UsersHandler{Users: userSvc, Tokens: tokens},
		&httpx.CatalogHandler{Store: catalogRepo},
		&httpx.CartsHandler{Carts: cartRepo},
		&httpx.CheckoutHandler{Checkout: checkoutSvc},
		&httpx.ChatHandler{Bot: bot},
	)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()
	prod.WaitClosed()
}
