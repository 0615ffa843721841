package tests

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "savoria-backend/internal/api/http"
	"savoria-backend/internal/domain"
	"savoria-backend/internal/mocks"
	"savoria-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type testRepos struct {
	menu         *mocks.MenuRepository
	orders       *mocks.OrderRepository
	reservations *mocks.ReservationRepository
	users        *mocks.UserRepository
}

func newTestRouter(t *testing.T) (*mux.Router, testRepos) {
	t.Helper()
	repos := testRepos{
		menu:         mocks.NewMenuRepository(t),
		orders:       mocks.NewOrderRepository(t),
		reservations: mocks.NewReservationRepository(t),
		users:        mocks.NewUserRepository(t),
	}
	handler := httpapi.NewHandler(
		service.NewMenuService(repos.menu, nil),
		service.NewOrderService(repos.orders, nil, nil),
		service.NewReservationService(repos.reservations, nil),
		service.NewAuthService(repos.users, "access", "refresh"),
	)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router, repos
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestHTTP_HealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "savoria-backend", body["service"])
}

func TestHTTP_GetMenu(t *testing.T) {
	t.Run("listing", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.menu.On("ListMenuItems", domain.MenuFilter{Category: "mains", Available: true}).
			Return([]domain.MenuItem{{ID: 1, Name: "Herb Risotto"}}, nil).Once()

		rr := doJSON(t, router, http.MethodGet, "/api/menu?category=mains", nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		var items []domain.MenuItem
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&items))
		assert.Len(t, items, 1)
	})

	t.Run("bad available parameter", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rr := doJSON(t, router, http.MethodGet, "/api/menu?available=maybe", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid query parameters", decodeBody(t, rr)["error"])
	})
}

func TestHTTP_GetMenuItem(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.menu.On("GetMenuItem", 3).
			Return(&domain.MenuItem{ID: 3, Name: "Truffle Pasta", Price: 22.00}, nil).Once()

		rr := doJSON(t, router, http.MethodGet, "/api/menu/3", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Truffle Pasta", decodeBody(t, rr)["name"])
	})

	t.Run("missing", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.menu.On("GetMenuItem", 99).
			Return(nil, &domain.MenuItemNotFoundError{ID: 99}).Once()

		rr := doJSON(t, router, http.MethodGet, "/api/menu/99", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non numeric id", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rr := doJSON(t, router, http.MethodGet, "/api/menu/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

// The categories path must not be swallowed by the menu item route.
func TestHTTP_GetCategoriesRoute(t *testing.T) {
	router, repos := newTestRouter(t)
	repos.menu.On("ListCategories").
		Return([]domain.MenuCategory{{ID: 1, Name: "Starters"}}, nil).Once()

	rr := doJSON(t, router, http.MethodGet, "/api/menu/categories/all", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var categories []domain.MenuCategory
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&categories))
	assert.Equal(t, "Starters", categories[0].Name)
}

func TestHTTP_CreateOrder(t *testing.T) {
	request := func() domain.CreateOrderRequest {
		return domain.CreateOrderRequest{
			Items: []domain.OrderItemRequest{{MenuItemID: 1, Quantity: 2}},
			CustomerInfo: domain.CustomerInfo{
				Name:  "Ada Guest",
				Email: "ada@example.com",
				Phone: "555-0100",
			},
			PaymentMethod: map[string]interface{}{"type": "card"},
		}
	}

	t.Run("created", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.orders.On("CreateOrder", mock.Anything).Run(func(args mock.Arguments) {
			order := args.Get(0).(*domain.Order)
			order.ID = 7
			order.OrderNumber = "ORD-1766600000000"
			order.Status = domain.OrderStatusPending
			order.TotalAmount = 34.05
		}).Return(nil).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/orders", request())
		assert.Equal(t, http.StatusCreated, rr.Code)

		body := decodeBody(t, rr)
		assert.Equal(t, float64(7), body["orderId"])
		assert.Equal(t, "ORD-1766600000000", body["orderNumber"])
		assert.Equal(t, domain.OrderStatusPending, body["status"])
		assert.Equal(t, 34.05, body["total"])
		assert.Equal(t, "Order placed successfully", body["message"])
	})

	t.Run("empty order rejected", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := request()
		req.Items = nil
		rr := doJSON(t, router, http.MethodPost, "/api/orders", req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, service.ErrEmptyOrder.Error(), decodeBody(t, rr)["error"])
	})

	t.Run("unavailable item rejected", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.orders.On("CreateOrder", mock.Anything).
			Return(&domain.MenuItemUnavailableError{Name: "Truffle Pasta"}).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/orders", request())
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeBody(t, rr)["error"], "Truffle Pasta")
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte("{not json")))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHTTP_UpdateOrderStatus(t *testing.T) {
	t.Run("legal transition", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.orders.On("GetOrderStatus", 7).Return(domain.OrderStatusPending, nil).Once()
		repos.orders.On("UpdateOrderStatus", 7, domain.OrderStatusConfirmed).
			Return(&domain.Order{ID: 7, Status: domain.OrderStatusConfirmed}, nil).Once()

		rr := doJSON(t, router, http.MethodPatch, "/api/orders/7/status",
			map[string]string{"status": domain.OrderStatusConfirmed})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Order status updated successfully", decodeBody(t, rr)["message"])
	})

	t.Run("illegal jump", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.orders.On("GetOrderStatus", 7).Return(domain.OrderStatusPending, nil).Once()

		rr := doJSON(t, router, http.MethodPatch, "/api/orders/7/status",
			map[string]string{"status": domain.OrderStatusDelivered})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rr := doJSON(t, router, http.MethodPatch, "/api/orders/7/status",
			map[string]string{"status": "teleported"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing order", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.orders.On("GetOrderStatus", 99).Return("", domain.ErrOrderNotFound).Once()

		rr := doJSON(t, router, http.MethodPatch, "/api/orders/99/status",
			map[string]string{"status": domain.OrderStatusConfirmed})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHTTP_CreateReservation(t *testing.T) {
	request := func() domain.CreateReservationRequest {
		return domain.CreateReservationRequest{
			CustomerName:  "Iris Diner",
			CustomerEmail: "iris@example.com",
			CustomerPhone: "555-0111",
			Date:          "2025-12-24",
			Time:          "19:00",
			PartySize:     4,
		}
	}

	t.Run("confirmed", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.reservations.On("CreateReservation", mock.Anything).Run(func(args mock.Arguments) {
			args.Get(0).(*domain.Reservation).ID = 11
		}).Return(nil).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/reservations", request())
		assert.Equal(t, http.StatusCreated, rr.Code)

		body := decodeBody(t, rr)
		assert.Equal(t, float64(11), body["reservationId"])
		assert.Equal(t, domain.ReservationStatusConfirmed, body["status"])
		assert.Equal(t, float64(4), body["partySize"])
	})

	t.Run("slot fully booked", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.reservations.On("CreateReservation", mock.Anything).
			Return(domain.ErrSlotFullyBooked).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/reservations", request())
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "This time slot is fully booked. Please choose another time.",
			decodeBody(t, rr)["error"])
	})

	t.Run("invalid time", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := request()
		req.Time = "3pm"
		rr := doJSON(t, router, http.MethodPost, "/api/reservations", req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHTTP_GetAvailability(t *testing.T) {
	t.Run("missing date", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rr := doJSON(t, router, http.MethodGet, "/api/reservations/availability", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Date parameter is required", decodeBody(t, rr)["error"])
	})

	t.Run("full evening", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.reservations.On("SlotCounts", "2025-12-24").
			Return(map[string]int{"19:00": 5}, nil).Once()

		rr := doJSON(t, router, http.MethodGet, "/api/reservations/availability?date=2025-12-24", nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		body := decodeBody(t, rr)
		assert.Equal(t, "2025-12-24", body["date"])
		slots := body["timeSlots"].([]interface{})
		assert.Len(t, slots, 11)
	})
}

func TestHTTP_CancelReservation(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.reservations.On("CancelReservation", 4).
			Return(&domain.Reservation{ID: 4, Status: domain.ReservationStatusCancelled}, nil).Once()

		rr := doJSON(t, router, http.MethodPatch, "/api/reservations/4/cancel", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Reservation cancelled successfully", decodeBody(t, rr)["message"])
	})

	t.Run("already terminal", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.reservations.On("CancelReservation", 4).
			Return(nil, domain.ErrReservationNotCancellable).Once()

		rr := doJSON(t, router, http.MethodPatch, "/api/reservations/4/cancel", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHTTP_Auth(t *testing.T) {
	t.Run("register", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.users.On("GetUserByEmail", "ada@example.com").Return(nil, sql.ErrNoRows).Once()
		repos.users.On("CreateUser", mock.Anything).Run(func(args mock.Arguments) {
			args.Get(0).(*domain.User).ID = 42
		}).Return(nil).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
			"name":     "Ada",
			"email":    "ada@example.com",
			"password": "secret1",
		})
		assert.Equal(t, http.StatusCreated, rr.Code)

		body := decodeBody(t, rr)
		assert.NotEmpty(t, body["accessToken"])
		assert.NotEmpty(t, body["refreshToken"])
	})

	t.Run("login rejects bad credentials", func(t *testing.T) {
		router, repos := newTestRouter(t)
		repos.users.On("GetUserByEmail", "ada@example.com").Return(nil, sql.ErrNoRows).Once()

		rr := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "ada@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, rr)["error"])
	})

	t.Run("refresh requires token", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rr := doJSON(t, router, http.MethodPost, "/api/auth/refresh", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
