package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order-management-server/config"
	_ "order-management-server/docs"
	"order-management-server/internal/codec"
	"order-management-server/internal/handler"
	"order-management-server/internal/model"
	"order-management-server/internal/repository"
	"order-management-server/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Order-management-server
// @version 1.0
// @description REST API каталога и заказов с кэшированием в Redis

// @host localhost:8080
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	cacheRepo := repository.NewCacheRepository(redisClient)
	cacheTTL := time.Duration(cfg.TTL.Cache) * time.Second

	categoryService := service.NewCacheAsideService(
		"Category",
		repository.NewCategoryRepository(db),
		cacheRepo,
		codec.NewJSONCodec[model.Category](),
		codec.NewJSONCodec[[]model.Category](),
		repository.CategoryKeys,
		func(c *model.Category) int { return c.CategoryID },
		cacheTTL,
	)
	productService := service.NewCacheAsideService(
		"Product",
		repository.NewProductRepository(db),
		cacheRepo,
		codec.NewJSONCodec[model.Product](),
		codec.NewJSONCodec[[]model.Product](),
		repository.ProductKeys,
		func(p *model.Product) int { return p.ProductID },
		cacheTTL,
	)
	customerService := service.NewCacheAsideService(
		"Customer",
		repository.NewCustomerRepository(db),
		cacheRepo,
		codec.NewJSONCodec[model.Customer](),
		codec.NewJSONCodec[[]model.Customer](),
		repository.CustomerKeys,
		func(c *model.Customer) int { return c.CustomerID },
		cacheTTL,
	)
	orderService := service.NewCacheAsideService(
		"Order",
		repository.NewOrderRepository(db),
		cacheRepo,
		codec.NewJSONCodec[model.Order](),
		codec.NewJSONCodec[[]model.Order](),
		repository.OrderKeys,
		func(o *model.Order) int { return o.OrderID },
		cacheTTL,
	)
	orderDetailService := service.NewCacheAsideService(
		"OrderDetail",
		repository.NewOrderDetailRepository(db),
		cacheRepo,
		codec.NewJSONCodec[model.OrderDetail](),
		codec.NewJSONCodec[[]model.OrderDetail](),
		repository.OrderDetailKeys,
		func(d *model.OrderDetail) int { return d.OrderDetailID },
		cacheTTL,
	)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	router.Use(config.DBMiddleware(db))
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/api", func(r chi.Router) {
		r.Route("/categories", handler.NewEntityHandler[model.Category](categoryService).Routes)
		r.Route("/products", handler.NewEntityHandler[model.Product](productService).Routes)
		r.Route("/customers", handler.NewEntityHandler[model.Customer](customerService).Routes)
		r.Route("/orders", handler.NewEntityHandler[model.Order](orderService).Routes)
		r.Route("/order-details", handler.NewEntityHandler[model.OrderDetail](orderDetailService).Routes)
		r.Route("/files", handler.NewFileHandler(s3Service, &cfg.TTL).Routes)
	})

	runServer(ctx, srv)
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
