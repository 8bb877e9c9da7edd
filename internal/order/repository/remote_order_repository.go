package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sabores/internal/domain"
	"sabores/internal/infrastructure/database"
)

var ErrRemoteNotConfigured = errors.New("remote order store not configured")

const orderColumns = `id, product_id, product_name, product_image, product_price,
	customer_name, customer_address, customer_whatsapp, delivery_date,
	payment_method, notes, status, created_at`

// RemoteOrderRepository stores orders in the remote relational store. A nil
// db means the remote tier is disabled and every call fails fast.
type RemoteOrderRepository struct {
	db     *sql.DB
	driver string
}

func NewRemoteOrderRepository(db *sql.DB, driver string) *RemoteOrderRepository {
	return &RemoteOrderRepository{db: db, driver: driver}
}

func (r *RemoteOrderRepository) Tier() domain.StorageTier {
	return domain.TierRemote
}

func (r *RemoteOrderRepository) Save(ctx context.Context, order domain.Order) error {
	if r.db == nil {
		return ErrRemoteNotConfigured
	}

	query := database.Rebind(r.driver, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.ProductID, order.ProductName,
		nullString(order.ProductImage), nullFloat(order.ProductPrice),
		order.CustomerName, order.CustomerAddress, order.CustomerWhatsapp,
		nullString(order.DeliveryDate), string(order.PaymentMethod),
		nullString(order.Notes), string(order.Status), order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

func (r *RemoteOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	if r.db == nil {
		return nil, ErrRemoteNotConfigured
	}

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			o            domain.Order
			productName  sql.NullString
			productImage sql.NullString
			productPrice sql.NullFloat64
			deliveryDate sql.NullString
			notes        sql.NullString
			payment      string
			status       string
		)
		err := rows.Scan(
			&o.ID, &o.ProductID, &productName, &productImage, &productPrice,
			&o.CustomerName, &o.CustomerAddress, &o.CustomerWhatsapp, &deliveryDate,
			&payment, &notes, &status, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}

		o.ProductName = productName.String
		o.ProductImage = productImage.String
		if productPrice.Valid {
			price := productPrice.Float64
			o.ProductPrice = &price
		}
		o.DeliveryDate = deliveryDate.String
		o.Notes = notes.String
		o.PaymentMethod = domain.PaymentMethod(payment)
		o.Status = domain.OrderStatus(status)
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
