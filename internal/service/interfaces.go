package service

import (
	"context"
	"time"

	"savoria-backend/internal/domain"
)

const (
	MenuTTL       = 5 * time.Minute
	CategoriesTTL = time.Hour

	CategoriesKey = "menu:categories"
)

type MenuRepository interface {
	ListMenuItems(filter domain.MenuFilter) ([]domain.MenuItem, error)
	GetMenuItem(id int) (*domain.MenuItem, error)
	ListCategories() ([]domain.MenuCategory, error)
}

type OrderRepository interface {
	CreateOrder(order *domain.Order) error
	GetOrder(orderID int) (*domain.Order, error)
	ListOrders() ([]domain.Order, error)
	GetOrderStatus(orderID int) (string, error)
	UpdateOrderStatus(orderID int, status string) (*domain.Order, error)
	SaveQRCode(orderID int, qr []byte) error
	GetQRCode(orderID int) ([]byte, error)
}

type ReservationRepository interface {
	CreateReservation(res *domain.Reservation) error
	GetReservation(id int) (*domain.Reservation, error)
	SlotCounts(date string) (map[string]int, error)
	CancelReservation(id int) (*domain.Reservation, error)
}

type UserRepository interface {
	CreateUser(user *domain.User) error
	GetUserByEmail(email string) (*domain.User, error)
	GetUserByID(id int) (*domain.User, error)
}

// MenuCache is advisory only: every call site tolerates a nil cache or a
// failing one.
type MenuCache interface {
	MenuKey(filter domain.MenuFilter) string
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type MenuServiceInterface interface {
	List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error)
	Get(id int) (*domain.MenuItem, error)
	Categories(ctx context.Context) ([]domain.MenuCategory, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req *domain.CreateOrderRequest) (*domain.Order, error)
	Get(orderID int) (*domain.Order, error)
	List() ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int, status string) (*domain.Order, error)
	GetQRCode(orderID int) ([]byte, error)
}

type ReservationServiceInterface interface {
	Create(ctx context.Context, req *domain.CreateReservationRequest) (*domain.Reservation, error)
	Get(id int) (*domain.Reservation, error)
	Availability(date string) ([]domain.TimeSlot, error)
	Cancel(ctx context.Context, id int) (*domain.Reservation, error)
}

type AuthServiceInterface interface {
	Register(name, email, password, phone string) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	Refresh(refreshToken string) (*AuthResult, error)
}
