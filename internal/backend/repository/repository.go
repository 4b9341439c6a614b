// Package repository persists the backend's products and orders in sqlite.
package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *sql.DB
}

type ProductFilter struct {
	FeaturedOnly bool
	Color        string
}

type OrderFilter struct {
	Email string
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// modernc sqlite serializes writes; a single connection avoids
	// table-locked errors under concurrent handlers.
	db.SetMaxOpenConns(1)

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not load migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return fmt.Errorf("failed to marshal colors: %w", err)
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	query := `INSERT INTO products (id, name, description, price, colors, images, category, featured, stock, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, insertErr := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, colors, images, p.Category, p.Featured, p.Stock, p.CreatedAt)
	if insertErr != nil {
		return fmt.Errorf("failed to insert product: %w", insertErr)
	}
	return nil
}

func (r *Repository) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	query := `SELECT id, name, description, price, colors, images, category, featured, stock, created_at
	          FROM products`
	var args []any
	if filter.FeaturedOnly {
		query += ` WHERE featured = ?`
		args = append(args, true)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		// color match is done against the decoded list; LIKE over the JSON
		// text would confuse "Gold" with "Black Gold"
		if filter.Color != "" && !p.HasColor(filter.Color) {
			continue
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT id, name, description, price, colors, images, category, featured, stock, created_at
	          FROM products WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return fmt.Errorf("failed to marshal colors: %w", err)
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	query := `UPDATE products
	          SET name = ?, description = ?, price = ?, colors = ?, images = ?, category = ?, featured = ?, stock = ?
	          WHERE id = ?`

	res, updateErr := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, colors, images, p.Category, p.Featured, p.Stock, p.ID)
	if updateErr != nil {
		return fmt.Errorf("failed to update product: %w", updateErr)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CountProducts(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *Repository) CreateOrder(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = domain.OrderStatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	customer, err := json.Marshal(o.CustomerInfo)
	if err != nil {
		return fmt.Errorf("failed to marshal customer info: %w", err)
	}

	query := `INSERT INTO orders (id, status, items, total, customer_info, payment_method, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, insertErr := r.db.ExecContext(ctx, query,
		o.ID, o.Status, items, o.Total, customer, o.PaymentMethod, o.CreatedAt)
	if insertErr != nil {
		return fmt.Errorf("failed to insert order: %w", insertErr)
	}
	return nil
}

func (r *Repository) ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	query := `SELECT id, status, items, total, customer_info, payment_method, created_at FROM orders`
	var args []any
	if filter.Email != "" {
		query += ` WHERE json_extract(customer_info, '$.email') = ?`
		args = append(args, filter.Email)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *Repository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT id, status, items, total, customer_info, payment_method, created_at
	          FROM orders WHERE id = ?`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*domain.Product, error) {
	var (
		p      domain.Product
		colors []byte
		images []byte
	)
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &colors, &images,
		&p.Category, &p.Featured, &p.Stock, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(colors, &p.Colors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal colors: %w", err)
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}
	return &p, nil
}

func scanOrder(s scanner) (*domain.Order, error) {
	var (
		o        domain.Order
		items    []byte
		customer []byte
	)
	err := s.Scan(&o.ID, &o.Status, &items, &o.Total, &customer, &o.PaymentMethod, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	if err := json.Unmarshal(customer, &o.CustomerInfo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer info: %w", err)
	}
	return &o, nil
}
