package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/furnshop/storefront/internal/domain"
	"github.com/furnshop/storefront/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now().UTC()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.Status = domain.OrderStatusPending
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin order transaction", zap.Error(err))
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, customer_name, customer_email, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.ID, order.CustomerName, order.CustomerEmail, order.TotalAmount,
		string(order.Status), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert order", zap.Error(err))
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID

		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, name, price, image, quantity, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, item.OrderID, item.ProductID, item.Name, item.Price, item.Image, item.Quantity, i,
		)
		if err != nil {
			r.logger.Error("Failed to insert order item", zap.Error(err))
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit order", zap.Error(err))
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, customer_name, customer_email, total_amount, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	err := scanOrder(r.db.QueryRowContext(ctx, query, id), &order)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}

	if err := r.attachItems(ctx, []*domain.Order{&order}); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT id, customer_name, customer_email, total_amount, status, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := scanOrder(rows, &order); err != nil {
			r.logger.Error("Failed to scan order", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate orders", zap.Error(err))
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, customer_name, customer_email, total_amount, status, created_at, updated_at
	`

	var order domain.Order
	err := scanOrder(r.db.QueryRowContext(ctx, query, id, string(status), time.Now().UTC()), &order)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return nil, err
	}

	if err := r.attachItems(ctx, []*domain.Order{&order}); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// order_items go with the order through ON DELETE CASCADE
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete order", zap.Error(err))
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return nil
}

// attachItems loads the items of all given orders in one query, each
// order's items in checkout order.
func (r *orderRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID.String()
		byID[o.ID] = o
		o.Items = make([]domain.OrderItem, 0)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, name, price, image, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position`,
		pq.Array(ids),
	)
	if err != nil {
		r.logger.Error("Failed to query order items", zap.Error(err))
		return fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Price,
			&item.Image,
			&item.Quantity,
		); err != nil {
			r.logger.Error("Failed to scan order item", zap.Error(err))
			return fmt.Errorf("scan order_item: %w", err)
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	return rows.Err()
}

func scanOrder(row rowScanner, order *domain.Order) error {
	var status string
	if err := row.Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.TotalAmount,
		&status,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return err
	}
	order.Status = domain.OrderStatus(status)
	return nil
}
