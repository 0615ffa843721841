package main

import (
	"log"

	httpapi "savoria-backend/internal/api/http"
	"savoria-backend/internal/config"
	"savoria-backend/internal/service"
	"savoria-backend/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	var cache service.MenuCache
	if client := config.InitRedis(); client != nil {
		cache = storage.NewRedisCache(client)
	}

	var publisher service.EventPublisher
	if writer := config.NewKafkaWriter("restaurant-events"); writer != nil {
		publisher = storage.NewKafkaPublisher(writer)
		defer writer.Close()
	}

	menuService := service.NewMenuService(repo, cache)
	orderService := service.NewOrderService(repo, publisher, service.DefaultQRGenerator{BaseURL: config.BaseURL()})
	reservationService := service.NewReservationService(repo, publisher)
	authService := service.NewAuthService(repo, config.JWTSecret(), config.JWTRefreshSecret())

	handler := httpapi.NewHandler(menuService, orderService, reservationService, authService)
	httpapi.StartServer(config.HTTPAddr(), httpapi.NewRouter(handler))
}
