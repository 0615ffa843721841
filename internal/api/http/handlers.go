package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"savoria-backend/internal/domain"
	"savoria-backend/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Menu         service.MenuServiceInterface
	Orders       service.OrderServiceInterface
	Reservations service.ReservationServiceInterface
	Auth         service.AuthServiceInterface
}

func NewHandler(menu service.MenuServiceInterface, orders service.OrderServiceInterface,
	reservations service.ReservationServiceInterface, auth service.AuthServiceInterface) *Handler {
	return &Handler{
		Menu:         menu,
		Orders:       orders,
		Reservations: reservations,
		Auth:         auth,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu/categories/all", h.getCategories).Methods("GET")
	r.HandleFunc("/api/menu/{id}", h.getMenuItem).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PATCH")

	r.HandleFunc("/api/reservations", h.createReservation).Methods("POST")
	r.HandleFunc("/api/reservations/availability", h.getAvailability).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", h.getReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}/cancel", h.cancelReservation).Methods("PATCH")

	r.HandleFunc("/api/auth/register", h.register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/refresh", h.refresh).Methods("POST")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "savoria-backend",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	filter := domain.MenuFilter{
		Category:  r.URL.Query().Get("category"),
		Dietary:   r.URL.Query().Get("dietary"),
		Search:    r.URL.Query().Get("search"),
		Available: true,
	}
	if raw := r.URL.Query().Get("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid query parameters")
			return
		}
		filter.Available = available
	}

	items, err := h.Menu.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch menu items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid menu item id")
		return
	}
	item, err := h.Menu.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// orderValidationErrors are rejected before any store access.
var orderValidationErrors = []error{
	service.ErrEmptyOrder,
	service.ErrInvalidQuantity,
	service.ErrMissingCustomerName,
	service.ErrInvalidCustomerEmail,
	service.ErrMissingCustomerPhone,
	service.ErrMissingPaymentMethod,
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	order, err := h.Orders.Create(r.Context(), &req)
	if err != nil {
		var notFound *domain.MenuItemNotFoundError
		var unavailable *domain.MenuItemUnavailableError
		switch {
		case errors.As(err, &notFound), errors.As(err, &unavailable):
			writeError(w, http.StatusBadRequest, err.Error())
		case isOneOf(err, orderValidationErrors):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"orderId":               order.ID,
		"orderNumber":           order.OrderNumber,
		"status":                order.Status,
		"total":                 order.TotalAmount,
		"estimatedDeliveryTime": order.EstimatedDeliveryTime.Format(time.RFC3339),
		"createdAt":             order.CreatedAt,
		"message":               "Order placed successfully",
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, err := h.Orders.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		var transition *domain.StatusTransitionError
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus), errors.As(err, &transition):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "Order not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	qr, err := h.Orders.GetQRCode(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if len(qr) == 0 {
		writeError(w, http.StatusNotFound, "QR code not found")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

var reservationValidationErrors = []error{
	service.ErrInvalidDate,
	service.ErrInvalidTime,
	service.ErrInvalidParty,
	service.ErrMissingName,
	service.ErrInvalidEmail,
	service.ErrMissingPhone,
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	res, err := h.Reservations.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotFullyBooked):
			writeError(w, http.StatusBadRequest, "This time slot is fully booked. Please choose another time.")
		case isOneOf(err, reservationValidationErrors):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create reservation")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"reservationId": res.ID,
		"customerName":  res.CustomerName,
		"date":          res.Date,
		"time":          res.Time,
		"partySize":     res.PartySize,
		"status":        res.Status,
		"createdAt":     res.CreatedAt,
		"message":       "Reservation confirmed successfully",
	})
}

func (h *Handler) getAvailability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	slots, err := h.Reservations.Availability(date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingDate):
			writeError(w, http.StatusBadRequest, "Date parameter is required")
		case errors.Is(err, service.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to check availability")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":      date,
		"timeSlots": slots,
	})
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	res, err := h.Reservations.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			writeError(w, http.StatusNotFound, "Reservation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch reservation")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	res, err := h.Reservations.Cancel(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotCancellable) {
			writeError(w, http.StatusNotFound, "Reservation not found or cannot be cancelled")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to cancel reservation")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Reservation cancelled successfully",
		"reservation": res,
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	result, err := h.Auth.Register(body.Name, body.Email, body.Password, body.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrMissingName),
			errors.Is(err, service.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "User registered successfully",
		"user":         result.User,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	result, err := h.Auth.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Login successful",
		"user":         result.User,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}
	if body.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	result, err := h.Auth.Refresh(body.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accessToken": result.AccessToken,
		"user":        result.User,
	})
}

func isOneOf(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
