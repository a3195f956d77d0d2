package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/chrisapx/farm-to-table-fav/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "shop_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

const itemColumns = `id, name, description, price, unit, category, image_url, available, stock_quantity, created_at`

func (r *Repository) ListAvailable(ctx context.Context) ([]*domain.GroceryItem, error) {
	query := `SELECT ` + itemColumns + `
	          FROM grocery_items WHERE available = TRUE
	          ORDER BY category, name`

	return r.queryItems(ctx, query)
}

func (r *Repository) ListAll(ctx context.Context) ([]*domain.GroceryItem, error) {
	query := `SELECT ` + itemColumns + `
	          FROM grocery_items
	          ORDER BY category, name`

	return r.queryItems(ctx, query)
}

func (r *Repository) queryItems(ctx context.Context, query string, args ...any) ([]*domain.GroceryItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query grocery items: %w", err)
	}
	defer rows.Close()

	var items []*domain.GroceryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

func scanItem(rows *sql.Rows) (*domain.GroceryItem, error) {
	var item domain.GroceryItem
	var description, imageURL sql.NullString
	err := rows.Scan(
		&item.ID,
		&item.Name,
		&description,
		&item.Price,
		&item.Unit,
		&item.Category,
		&imageURL,
		&item.Available,
		&item.StockQuantity,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan grocery item: %w", err)
	}
	item.Description = description.String
	item.ImageURL = imageURL.String
	return &item, nil
}

func (r *Repository) CreateItem(ctx context.Context, item *domain.GroceryItem) error {
	query := `INSERT INTO grocery_items (id, name, description, price, unit, category, image_url, available, stock_quantity, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		nullIfEmpty(item.Description),
		item.Price,
		item.Unit,
		item.Category,
		nullIfEmpty(item.ImageURL),
		item.Available,
		item.StockQuantity,
	)
	if err != nil {
		return fmt.Errorf("insert grocery item: %w", err)
	}
	return nil
}

func (r *Repository) UpdateItem(ctx context.Context, item *domain.GroceryItem) error {
	query := `UPDATE grocery_items
	          SET name = $2, description = $3, price = $4, unit = $5, category = $6, image_url = $7, stock_quantity = $8
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		nullIfEmpty(item.Description),
		item.Price,
		item.Unit,
		item.Category,
		nullIfEmpty(item.ImageURL),
		item.StockQuantity,
	)
	if err != nil {
		return fmt.Errorf("update grocery item: %w", err)
	}
	return checkAffected(res, ErrItemNotFound)
}

func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM grocery_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete grocery item: %w", err)
	}
	return checkAffected(res, ErrItemNotFound)
}

func (r *Repository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE grocery_items SET available = $2 WHERE id = $1`, id, available)
	if err != nil {
		return fmt.Errorf("set availability: %w", err)
	}
	return checkAffected(res, ErrItemNotFound)
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	query := `INSERT INTO orders (id, customer_name, whatsapp_number, notes, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, NOW())`

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.CustomerName,
		order.WhatsappNumber,
		nullIfEmpty(order.Notes),
		order.Status,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *Repository) CreateOrderItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `INSERT INTO order_items (id, order_id, grocery_item_id, item_name, quantity, unit_price, unit)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare order items insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		_, err := stmt.ExecContext(ctx,
			item.ID,
			item.OrderID,
			item.GroceryItemID,
			item.ItemName,
			item.Quantity,
			item.UnitPrice,
			item.Unit,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

const orderColumns = `id, customer_name, whatsapp_number, notes, status, created_at`

func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order domain.Order
	var notes sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.CustomerName,
		&order.WhatsappNumber,
		&notes,
		&order.Status,
		&order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	order.Notes = notes.String

	items, err := r.orderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		var notes sql.NullString
		if err := rows.Scan(
			&order.ID,
			&order.CustomerName,
			&order.WhatsappNumber,
			&notes,
			&order.Status,
			&order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.Notes = notes.String
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, order := range orders {
		items, err := r.orderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

func (r *Repository) orderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	query := `SELECT id, order_id, grocery_item_id, item_name, quantity, unit_price, unit
	          FROM order_items WHERE order_id = $1`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.GroceryItemID,
			&item.ItemName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Unit,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return checkAffected(res, ErrOrderNotFound)
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func checkAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
