package domain

import (
	"encoding/json"
	"time"
)

type MenuCategory struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	Active       bool   `json:"active"`
}

type MenuItem struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           float64         `json:"price"`
	Image           string          `json:"image"`
	Category        string          `json:"category"`
	Dietary         []string        `json:"dietary"`
	Ingredients     []string        `json:"ingredients"`
	Allergens       []string        `json:"allergens"`
	NutritionInfo   json.RawMessage `json:"nutrition_info,omitempty"`
	PreparationTime int             `json:"preparation_time"`
	Popularity      float64         `json:"popularity"`
	Available       bool            `json:"available"`
	CreatedAt       time.Time       `json:"created_at"`
}

// MenuFilter narrows the menu listing. Zero values mean "no filter";
// Available defaults to true at the handler boundary.
type MenuFilter struct {
	Category  string
	Dietary   string
	Search    string
	Available bool
}

type DeliveryAddress struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zip_code"`
	Instructions string `json:"instructions,omitempty"`
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Order struct {
	ID                    int                    `json:"id"`
	OrderNumber           string                 `json:"order_number"`
	Status                string                 `json:"status"`
	PaymentStatus         string                 `json:"payment_status"`
	Subtotal              float64                `json:"subtotal"`
	TaxAmount             float64                `json:"tax_amount"`
	DeliveryFee           float64                `json:"delivery_fee"`
	TotalAmount           float64                `json:"total_amount"`
	DeliveryAddress       *DeliveryAddress       `json:"delivery_address,omitempty"`
	SpecialInstructions   string                 `json:"special_instructions,omitempty"`
	PaymentMethod         map[string]interface{} `json:"payment_method,omitempty"`
	EstimatedDeliveryTime time.Time              `json:"estimated_delivery_time"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
	Items                 []OrderItem            `json:"items"`
}

type OrderItem struct {
	ID                  int               `json:"id"`
	MenuItemID          int               `json:"menu_item_id"`
	Name                string            `json:"name"`
	Quantity            int               `json:"quantity"`
	UnitPrice           float64           `json:"unit_price"`
	Customizations      map[string]string `json:"customizations,omitempty"`
	SpecialInstructions string            `json:"special_instructions,omitempty"`
}

// CreateOrderRequest is the client checkout payload. Unit prices are
// deliberately absent: the catalog is the only pricing authority.
type CreateOrderRequest struct {
	Items               []OrderItemRequest     `json:"items"`
	CustomerInfo        CustomerInfo           `json:"customerInfo"`
	DeliveryAddress     *DeliveryAddress       `json:"deliveryAddress,omitempty"`
	PaymentMethod       map[string]interface{} `json:"paymentMethod"`
	SpecialInstructions string                 `json:"specialInstructions,omitempty"`
}

type OrderItemRequest struct {
	MenuItemID          int               `json:"menuItemId"`
	Quantity            int               `json:"quantity"`
	Customizations      map[string]string `json:"customizations,omitempty"`
	SpecialInstructions string            `json:"specialInstructions,omitempty"`
}

type Reservation struct {
	ID              int       `json:"id"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	PartySize       int       `json:"party_size"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateReservationRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	PartySize       int    `json:"partySize"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// TimeSlot is derived from the reservation rows for one evening slot;
// it is never persisted on its own.
type TimeSlot struct {
	Time             string `json:"time"`
	Available        bool   `json:"available"`
	ReservationCount int    `json:"reservationCount"`
}

type User struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Phone         string    `json:"phone,omitempty"`
	LoyaltyPoints int       `json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"`
}

// Event is the message published to Kafka when an order or reservation
// changes state.
type Event struct {
	Type          string    `json:"type"`
	OrderID       int       `json:"order_id,omitempty"`
	OrderNumber   string    `json:"order_number,omitempty"`
	ReservationID int       `json:"reservation_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	Total         float64   `json:"total,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

const (
	EventOrderCreated         = "order_created"
	EventOrderStatusChanged   = "order_status_changed"
	EventReservationConfirmed = "reservation_confirmed"
	EventReservationCancelled = "reservation_cancelled"
)
