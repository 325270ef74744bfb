package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/gradovikov/storefront/internal/domain/errors"
	"github.com/gradovikov/storefront/internal/domain/model"
	"github.com/gradovikov/storefront/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage depends on.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type stockLedger struct {
	storage *Storage
}

type productCatalog struct {
	storage *Storage
}

type userDirectory struct {
	storage *Storage
}

type driftJournal struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Stock() repository.StockLedger {
	return &stockLedger{storage: s}
}

func (s *Storage) Catalog() repository.ProductCatalog {
	return &productCatalog{storage: s}
}

func (s *Storage) Users() repository.UserDirectory {
	return &userDirectory{storage: s}
}

func (s *Storage) Drift() repository.DriftJournal {
	return &driftJournal{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL,
            quantity BIGINT NOT NULL CHECK (quantity >= 0)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users(id),
            total NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL,
            payment_method TEXT NOT NULL,
            mobile TEXT NOT NULL,
            address TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_lines (
            order_id UUID NOT NULL REFERENCES orders(id),
            line_no INT NOT NULL,
            product_id UUID NOT NULL REFERENCES products(id),
            quantity BIGINT NOT NULL CHECK (quantity > 0),
            PRIMARY KEY (order_id, line_no)
        )`,
		`CREATE TABLE IF NOT EXISTS stock_drift (
            id BIGSERIAL PRIMARY KEY,
            product_id UUID NOT NULL,
            quantity BIGINT NOT NULL,
            reason TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            settled BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_lines_product ON order_lines(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_drift_pending ON stock_drift(settled, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- StockLedger implementation ---

// Reserve applies the check and the decrement as one statement. Concurrent
// reservations against the same product serialize on the row; the quantity
// predicate guarantees the counter never goes negative.
func (r *stockLedger) Reserve(ctx context.Context, productID uuid.UUID, qty int64) error {
	const query = `UPDATE products SET quantity = quantity - $2 WHERE id=$1 AND quantity >= $2`
	tag, err := r.storage.pool.Exec(ctx, query, productID, qty)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	const existsQuery = `SELECT EXISTS(SELECT 1 FROM products WHERE id=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, existsQuery, productID).Scan(&exists); err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	if !exists {
		return domainErrors.ErrProductNotFound
	}
	return domainErrors.ErrInsufficientStock
}

func (r *stockLedger) Release(ctx context.Context, productID uuid.UUID, qty int64) error {
	const query = `UPDATE products SET quantity = quantity + $2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, productID, qty)
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrProductNotFound
	}
	return nil
}

// --- ProductCatalog implementation ---

func (r *productCatalog) Exists(ctx context.Context, productID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM products WHERE id=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *productCatalog) UnitPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	const query = `SELECT price FROM products WHERE id=$1`
	var price decimal.Decimal
	err := r.storage.pool.QueryRow(ctx, query, productID).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, domainErrors.ErrProductNotFound
		}
		return decimal.Decimal{}, err
	}
	return price, nil
}

// --- UserDirectory implementation ---

func (r *userDirectory) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userDirectory) Role(ctx context.Context, userID uuid.UUID) (model.Role, error) {
	const query = `SELECT role FROM users WHERE id=$1`
	var role model.Role
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (id, user_id, total, status, payment_method, mobile, address, created_at)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		if _, err := tx.Exec(ctx, insertOrder,
			order.ID, order.UserID, order.Total, order.Status,
			order.PaymentMethod, order.Mobile, order.Address, order.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		const insertLine = `INSERT INTO order_lines (order_id, line_no, product_id, quantity) VALUES ($1, $2, $3, $4)`
		for i, line := range order.Lines {
			if _, err := tx.Exec(ctx, insertLine, order.ID, i, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("insert order line: %w", err)
			}
		}
		return nil
	})
}

const orderColumns = `id, user_id, total, status, payment_method, mobile, address, created_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.PaymentMethod, &o.Mobile, &o.Address, &o.CreatedAt)
}

func (r *orderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var order model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.loadLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Order, int64, error) {
	const countQuery = `SELECT COUNT(*) FROM orders WHERE user_id=$1`
	var total int64
	if err := r.storage.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	orders, err := r.queryOrders(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Order, int64, error) {
	const countQuery = `SELECT COUNT(*) FROM orders`
	var total int64
	if err := r.storage.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	orders, err := r.queryOrders(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.PaymentMethod, &o.Mobile, &o.Address, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		lines, err := r.loadLines(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Lines = lines
	}
	return result, nil
}

func (r *orderRepository) loadLines(ctx context.Context, orderID uuid.UUID) ([]model.OrderLine, error) {
	const query = `SELECT product_id, quantity FROM order_lines WHERE order_id=$1 ORDER BY line_no`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	query := `UPDATE orders SET status=$2 WHERE id=$1 RETURNING ` + orderColumns
	var order model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID, status), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.loadLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return &order, nil
}

func (r *orderRepository) ContainsProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS(
                       SELECT 1 FROM orders o
                       JOIN order_lines l ON l.order_id = o.id
                       WHERE o.user_id=$1 AND l.product_id=$2
                   )`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// --- DriftJournal implementation ---

func (r *driftJournal) Record(ctx context.Context, productID uuid.UUID, qty int64, reason string) error {
	const query = `INSERT INTO stock_drift (product_id, quantity, reason) VALUES ($1, $2, $3)`
	if _, err := r.storage.pool.Exec(ctx, query, productID, qty, reason); err != nil {
		return fmt.Errorf("record drift: %w", err)
	}
	return nil
}

func (r *driftJournal) Pending(ctx context.Context, limit int) ([]model.StockAdjustment, error) {
	const query = `SELECT id, product_id, quantity, reason, created_at, settled
                   FROM stock_drift WHERE settled = FALSE ORDER BY created_at LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StockAdjustment
	for rows.Next() {
		var a model.StockAdjustment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Quantity, &a.Reason, &a.CreatedAt, &a.Settled); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Settle flips the row only while it is still pending, so concurrent
// reconciler passes cannot both claim the same adjustment.
func (r *driftJournal) Settle(ctx context.Context, adjustmentID int64) error {
	const query = `UPDATE stock_drift SET settled = TRUE WHERE id=$1 AND settled = FALSE`
	tag, err := r.storage.pool.Exec(ctx, query, adjustmentID)
	if err != nil {
		return fmt.Errorf("settle drift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *driftJournal) Reopen(ctx context.Context, adjustmentID int64) error {
	const query = `UPDATE stock_drift SET settled = FALSE WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, adjustmentID)
	if err != nil {
		return fmt.Errorf("reopen drift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// StockSnapshot returns current product quantities, used to prime an external
// stock ledger backend at startup.
func (s *Storage) StockSnapshot(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT id, name, price, quantity FROM products`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
