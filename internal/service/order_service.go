package service

import (
	"context"
	"errors"
	"log"
	"time"

	"savoria-backend/internal/domain"
)

var (
	ErrEmptyOrder           = errors.New("order must contain at least one item")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrMissingCustomerName  = errors.New("customer name is required")
	ErrInvalidCustomerEmail = errors.New("valid email is required")
	ErrMissingCustomerPhone = errors.New("phone number is required")
	ErrMissingPaymentMethod = errors.New("payment method is required")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
)

type OrderService struct {
	repo      OrderRepository
	publisher EventPublisher
	qrEncoder QRGenerator
}

func NewOrderService(repo OrderRepository, publisher EventPublisher, qr QRGenerator) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, qrEncoder: qr}
}

// Create validates the checkout payload, then hands the repository one
// atomic transaction that re-prices every item from the catalog. The QR
// code and the order_created event are best effort after commit.
func (s *OrderService) Create(ctx context.Context, req *domain.CreateOrderRequest) (*domain.Order, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	order := &domain.Order{
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
		PaymentMethod:       req.PaymentMethod,
		Items:               make([]domain.OrderItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, domain.OrderItem{
			MenuItemID:          item.MenuItemID,
			Quantity:            item.Quantity,
			Customizations:      item.Customizations,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	if err := s.repo.CreateOrder(order); err != nil {
		return nil, err
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			if err := s.repo.SaveQRCode(order.ID, qr); err != nil {
				log.Printf("failed to store QR code for order %d: %v", order.ID, err)
			}
		} else {
			log.Printf("failed to generate QR code for order %d: %v", order.ID, err)
		}
	}

	s.publish(ctx, domain.Event{
		Type:        domain.EventOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Total:       order.TotalAmount,
		Timestamp:   time.Now(),
	})

	return order, nil
}

func (s *OrderService) Get(orderID int) (*domain.Order, error) {
	return s.repo.GetOrder(orderID)
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.repo.ListOrders()
}

// UpdateStatus enforces the order status graph: the linear progression
// pending, confirmed, preparing, ready, delivered, with cancellation
// allowed from any non-terminal state.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	current, err := s.repo.GetOrderStatus(orderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current, status) {
		return nil, &domain.StatusTransitionError{From: current, To: status}
	}

	order, err := s.repo.UpdateOrderStatus(orderID, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.Event{
		Type:        domain.EventOrderStatusChanged,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Timestamp:   time.Now(),
	})

	return order, nil
}

func (s *OrderService) GetQRCode(orderID int) ([]byte, error) {
	qr, err := s.repo.GetQRCode(orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			if err := s.repo.SaveQRCode(orderID, regenerated); err != nil {
				log.Printf("failed to cache regenerated QR code: %v", err)
			}
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("failed to publish %s event: %v", event.Type, err)
	}
}

func validateOrderRequest(req *domain.CreateOrderRequest) error {
	if len(req.Items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	if req.CustomerInfo.Name == "" {
		return ErrMissingCustomerName
	}
	if !domain.ValidEmail(req.CustomerInfo.Email) {
		return ErrInvalidCustomerEmail
	}
	if req.CustomerInfo.Phone == "" {
		return ErrMissingCustomerPhone
	}
	if len(req.PaymentMethod) == 0 {
		return ErrMissingPaymentMethod
	}
	return nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
