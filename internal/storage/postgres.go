package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"savoria-backend/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const menuItemColumns = `
	mi.id,
	mi.name,
	COALESCE(mi.description, ''),
	mi.price,
	COALESCE(mi.image_url, ''),
	COALESCE(mc.name, ''),
	mi.dietary_info,
	mi.ingredients,
	mi.allergens,
	mi.nutrition_info,
	mi.preparation_time,
	mi.popularity_score,
	mi.available,
	mi.created_at`

func scanMenuItem(row interface{ Scan(...interface{}) error }) (*domain.MenuItem, error) {
	var item domain.MenuItem
	var nutrition []byte
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.Image,
		&item.Category, pq.Array(&item.Dietary), pq.Array(&item.Ingredients),
		pq.Array(&item.Allergens), &nutrition, &item.PreparationTime,
		&item.Popularity, &item.Available, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.NutritionInfo = nutrition
	return &item, nil
}

func (r *PostgresRepository) ListMenuItems(filter domain.MenuFilter) ([]domain.MenuItem, error) {
	query := `
		SELECT ` + menuItemColumns + `
		FROM menu_items mi
		LEFT JOIN menu_categories mc ON mi.category_id = mc.id
		WHERE mi.available = $1`
	args := []interface{}{filter.Available}

	if filter.Category != "" {
		args = append(args, "%"+filter.Category+"%")
		query += fmt.Sprintf(" AND mc.name ILIKE $%d", len(args))
	}
	if filter.Dietary != "" {
		args = append(args, filter.Dietary)
		query += fmt.Sprintf(" AND $%d = ANY(mi.dietary_info)", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (mi.name ILIKE $%d OR mi.description ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY mi.popularity_score DESC, mi.name ASC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			continue
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(id int) (*domain.MenuItem, error) {
	row := r.DB.QueryRow(`
		SELECT `+menuItemColumns+`
		FROM menu_items mi
		LEFT JOIN menu_categories mc ON mi.category_id = mc.id
		WHERE mi.id = $1`, id)
	return scanMenuItem(row)
}

func (r *PostgresRepository) ListCategories() ([]domain.MenuCategory, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, COALESCE(description, ''), display_order, active
		FROM menu_categories
		WHERE active = true
		ORDER BY display_order ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.MenuCategory{}
	for rows.Next() {
		var cat domain.MenuCategory
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.DisplayOrder, &cat.Active); err != nil {
			continue
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// CreateOrder runs the whole checkout transaction: every requested item
// is re-priced from the catalog, totals are derived from those prices
// alone, and the order plus its items commit as one unit. Any failure
// rolls the whole order back.
func (r *PostgresRepository) CreateOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var subtotal float64
	for i := range order.Items {
		item := &order.Items[i]

		var price float64
		var available bool
		err := tx.QueryRow(
			"SELECT name, price, available FROM menu_items WHERE id = $1",
			item.MenuItemID,
		).Scan(&item.Name, &price, &available)
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.MenuItemNotFoundError{ID: item.MenuItemID}
		}
		if err != nil {
			return err
		}
		if !available {
			return &domain.MenuItemUnavailableError{Name: item.Name}
		}

		item.UnitPrice = price
		subtotal += price * float64(item.Quantity)
	}

	order.Subtotal = domain.Round2(subtotal)
	order.TaxAmount, order.DeliveryFee, order.TotalAmount = domain.CalculateTotals(subtotal)

	now := time.Now()
	order.OrderNumber = domain.NewOrderNumber(now)
	order.Status = domain.OrderStatusPending
	order.PaymentStatus = domain.PaymentStatusPending
	order.EstimatedDeliveryTime = now.Add(domain.DeliveryEstimate)

	address, err := json.Marshal(order.DeliveryAddress)
	if err != nil {
		return err
	}
	payment, err := json.Marshal(order.PaymentMethod)
	if err != nil {
		return err
	}

	err = tx.QueryRow(`
		INSERT INTO orders (
			order_number, status, payment_status, subtotal, tax_amount,
			delivery_fee, total_amount, delivery_address, special_instructions,
			payment_method, estimated_delivery_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, order.OrderNumber, order.Status, order.PaymentStatus, order.Subtotal,
		order.TaxAmount, order.DeliveryFee, order.TotalAmount, address,
		order.SpecialInstructions, payment, order.EstimatedDeliveryTime,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		customizations, err := json.Marshal(item.Customizations)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO order_items (
				order_id, menu_item_id, quantity, unit_price,
				customizations, special_instructions
			) VALUES ($1, $2, $3, $4, $5, $6)
		`, order.ID, item.MenuItemID, item.Quantity, item.UnitPrice,
			customizations, item.SpecialInstructions); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(orderID int) (*domain.Order, error) {
	var order domain.Order
	var address, payment []byte
	err := r.DB.QueryRow(`
		SELECT id, order_number, status, payment_status, subtotal, tax_amount,
		       delivery_fee, total_amount, delivery_address,
		       COALESCE(special_instructions, ''), payment_method,
		       estimated_delivery_time, created_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(
		&order.ID, &order.OrderNumber, &order.Status, &order.PaymentStatus,
		&order.Subtotal, &order.TaxAmount, &order.DeliveryFee, &order.TotalAmount,
		&address, &order.SpecialInstructions, &payment,
		&order.EstimatedDeliveryTime, &order.CreatedAt, &order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(address) > 0 {
		json.Unmarshal(address, &order.DeliveryAddress)
	}
	if len(payment) > 0 {
		json.Unmarshal(payment, &order.PaymentMethod)
	}

	rows, err := r.DB.Query(`
		SELECT oi.id, oi.menu_item_id, COALESCE(mi.name, ''), oi.quantity,
		       oi.unit_price, oi.customizations, COALESCE(oi.special_instructions, '')
		FROM order_items oi
		LEFT JOIN menu_items mi ON oi.menu_item_id = mi.id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order.Items = []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		var customizations []byte
		if err := rows.Scan(&item.ID, &item.MenuItemID, &item.Name, &item.Quantity,
			&item.UnitPrice, &customizations, &item.SpecialInstructions); err != nil {
			continue
		}
		if len(customizations) > 0 {
			json.Unmarshal(customizations, &item.Customizations)
		}
		order.Items = append(order.Items, item)
	}
	return &order, rows.Err()
}

func (r *PostgresRepository) ListOrders() ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT id, order_number, status, payment_status, subtotal, tax_amount,
		       delivery_fee, total_amount, estimated_delivery_time, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.OrderNumber, &order.Status,
			&order.PaymentStatus, &order.Subtotal, &order.TaxAmount,
			&order.DeliveryFee, &order.TotalAmount, &order.EstimatedDeliveryTime,
			&order.CreatedAt, &order.UpdatedAt); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) GetOrderStatus(orderID int) (string, error) {
	var status string
	err := r.DB.QueryRow("SELECT status FROM orders WHERE id = $1", orderID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrOrderNotFound
	}
	return status, err
}

func (r *PostgresRepository) UpdateOrderStatus(orderID int, status string) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRow(`
		UPDATE orders
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING id, order_number, status, updated_at
	`, status, orderID).Scan(&order.ID, &order.OrderNumber, &order.Status, &order.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PostgresRepository) SaveQRCode(orderID int, qr []byte) error {
	_, err := r.DB.Exec("UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(orderID int) ([]byte, error) {
	var qr []byte
	err := r.DB.QueryRow("SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	return qr, err
}

// CreateReservation admits a reservation for its (date, time) slot.
// A transaction-scoped advisory lock keyed on the slot serializes
// concurrent admissions, so the count-then-insert pair cannot overshoot
// the slot capacity.
func (r *PostgresRepository) CreateReservation(res *domain.Reservation) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	slot := res.Date + " " + res.Time
	if _, err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext($1))", slot); err != nil {
		return err
	}

	var count int
	err = tx.QueryRow(`
		SELECT COUNT(*)
		FROM reservations
		WHERE reservation_date = $1
		AND reservation_time = $2
		AND status IN ('pending', 'confirmed')
	`, res.Date, res.Time).Scan(&count)
	if err != nil {
		return err
	}
	if count >= domain.SlotCapacity {
		return domain.ErrSlotFullyBooked
	}

	err = tx.QueryRow(`
		INSERT INTO reservations (
			customer_name, customer_email, customer_phone,
			reservation_date, reservation_time, party_size,
			special_requests, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, res.CustomerName, res.CustomerEmail, res.CustomerPhone,
		res.Date, res.Time, res.PartySize, res.SpecialRequests, res.Status,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetReservation(id int) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.DB.QueryRow(`
		SELECT id, customer_name, customer_email, customer_phone,
		       reservation_date, reservation_time, party_size,
		       COALESCE(special_requests, ''), status, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`, id).Scan(&res.ID, &res.CustomerName, &res.CustomerEmail, &res.CustomerPhone,
		&res.Date, &res.Time, &res.PartySize, &res.SpecialRequests,
		&res.Status, &res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *PostgresRepository) SlotCounts(date string) (map[string]int, error) {
	rows, err := r.DB.Query(`
		SELECT reservation_time, COUNT(*)
		FROM reservations
		WHERE reservation_date = $1
		AND status IN ('pending', 'confirmed')
		GROUP BY reservation_time
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var slot string
		var count int
		if err := rows.Scan(&slot, &count); err != nil {
			continue
		}
		counts[slot] = count
	}
	return counts, rows.Err()
}

// CancelReservation transitions to cancelled only from pending or
// confirmed; the guard lives in the UPDATE itself.
func (r *PostgresRepository) CancelReservation(id int) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.DB.QueryRow(`
		UPDATE reservations
		SET status = 'cancelled', updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND status IN ('pending', 'confirmed')
		RETURNING id, customer_name, status, updated_at
	`, id).Scan(&res.ID, &res.CustomerName, &res.Status, &res.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReservationNotCancellable
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *PostgresRepository) CreateUser(user *domain.User) error {
	return r.DB.QueryRow(`
		INSERT INTO users (name, email, password_hash, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, loyalty_points, created_at
	`, user.Name, user.Email, user.PasswordHash, user.Phone).
		Scan(&user.ID, &user.LoyaltyPoints, &user.CreatedAt)
}

func (r *PostgresRepository) GetUserByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRow(`
		SELECT id, name, email, password_hash, COALESCE(phone, ''), loyalty_points, created_at
		FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Phone, &user.LoyaltyPoints, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetUserByID(id int) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRow(`
		SELECT id, name, email, password_hash, COALESCE(phone, ''), loyalty_points, created_at
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Phone, &user.LoyaltyPoints, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_categories (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			display_order INT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT true
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			category_id INT REFERENCES menu_categories(id),
			name VARCHAR(200) NOT NULL,
			description TEXT,
			price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			image_url TEXT,
			dietary_info TEXT[] NOT NULL DEFAULT '{}',
			ingredients TEXT[] NOT NULL DEFAULT '{}',
			allergens TEXT[] NOT NULL DEFAULT '{}',
			nutrition_info JSONB,
			preparation_time INT NOT NULL DEFAULT 0,
			popularity_score NUMERIC(6,2) NOT NULL DEFAULT 0,
			available BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			order_number VARCHAR(32) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
			subtotal NUMERIC(10,2) NOT NULL,
			tax_amount NUMERIC(10,2) NOT NULL,
			delivery_fee NUMERIC(10,2) NOT NULL,
			total_amount NUMERIC(10,2) NOT NULL,
			delivery_address JSONB,
			special_instructions TEXT,
			payment_method JSONB,
			estimated_delivery_time TIMESTAMPTZ,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id INT NOT NULL,
			quantity INT NOT NULL CHECK (quantity > 0),
			unit_price NUMERIC(10,2) NOT NULL,
			customizations JSONB,
			special_instructions TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id SERIAL PRIMARY KEY,
			customer_name VARCHAR(200) NOT NULL,
			customer_email VARCHAR(200) NOT NULL,
			customer_phone VARCHAR(50) NOT NULL,
			reservation_date VARCHAR(10) NOT NULL,
			reservation_time VARCHAR(5) NOT NULL,
			party_size INT NOT NULL CHECK (party_size BETWEEN 1 AND 20),
			special_requests TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_slot
			ON reservations (reservation_date, reservation_time)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			email VARCHAR(200) NOT NULL UNIQUE,
			password_hash VARCHAR(100) NOT NULL,
			phone VARCHAR(50),
			loyalty_points INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
