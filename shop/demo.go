package shop

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"query-gateway/database"
	"query-gateway/models"
	"query-gateway/validator"
)

// Store is the part of the gateway the demo drives.
type Store interface {
	Insert(ctx context.Context, table string, cols *database.Columns) (int64, error)
	Select(ctx context.Context, table, condition string, params ...database.Value) ([]database.Row, error)
	RawQuery(ctx context.Context, query string, params ...database.Value) ([]database.Row, error)
	Update(ctx context.Context, table string, cols *database.Columns, condition string, params ...database.Value) (int64, error)
}

var _ Store = (*database.Gateway)(nil)

const orderDetailsQuery = `
	SELECT o.id, u.name AS user_name, o.total_amount, o.status,
	       p.name AS product_name, oi.quantity, oi.price_per_unit
	FROM orders o
	JOIN users u ON o.user_id = u.id
	JOIN order_items oi ON o.id = oi.order_id
	JOIN products p ON oi.product_id = p.id
	WHERE o.id = ?`

// Customer is who places the demo order.
type Customer struct {
	Name     string
	Email    string
	Password string
}

func DefaultCustomer() Customer {
	return Customer{
		Name:     "Alice Johnson 2",
		Email:    "alice2@example.com",
		Password: "secure123",
	}
}

// Result holds the ids created by a demo run.
type Result struct {
	UserID      int64
	ProductID   int64
	OrderID     int64
	OrderItemID int64
	Details     []models.OrderDetail
}

// Demo populates the shop schema and queries it back, one step at a time.
type Demo struct {
	store     Store
	validator *validator.Validator
	out       io.Writer
	logger    *slog.Logger
	hashCost  int
}

func NewDemo(store Store, out io.Writer, logger *slog.Logger) *Demo {
	return &Demo{
		store:     store,
		validator: validator.New(),
		out:       out,
		logger:    logger,
		hashCost:  bcrypt.DefaultCost,
	}
}

// WithHashCost sets the bcrypt cost used for the customer's password.
func (d *Demo) WithHashCost(cost int) *Demo {
	d.hashCost = cost
	return d
}

// Run executes the scenario and stops at the first failing step.
func (d *Demo) Run(ctx context.Context, customer Customer) (*Result, error) {
	res := &Result{}

	// 1. User
	hash, err := bcrypt.GenerateFromPassword([]byte(customer.Password), d.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := models.User{Name: customer.Name, Email: customer.Email, PasswordHash: string(hash)}
	if res.UserID, err = d.insert(ctx, models.TableUsers, user, user.Columns()); err != nil {
		return nil, err
	}
	fmt.Fprintf(d.out, "Inserted user with ID: %d\n", res.UserID)

	// 2. Product
	product := models.Product{
		Name:          "Tablet",
		Description:   "Tablet with 10-inch display",
		Price:         1200.00,
		StockQuantity: 5,
	}
	if res.ProductID, err = d.insert(ctx, models.TableProducts, product, product.Columns()); err != nil {
		return nil, err
	}
	fmt.Fprintf(d.out, "Inserted product with ID: %d\n", res.ProductID)

	// 3. Order
	order := models.Order{UserID: res.UserID, TotalAmount: 1200.00, Status: models.OrderStatusPending}
	if res.OrderID, err = d.insert(ctx, models.TableOrders, order, order.Columns()); err != nil {
		return nil, err
	}

	// 4. Order item
	item := models.OrderItem{
		OrderID:      res.OrderID,
		ProductID:    res.ProductID,
		Quantity:     1,
		PricePerUnit: 1200.00,
	}
	if res.OrderItemID, err = d.insert(ctx, models.TableOrderItems, item, item.Columns()); err != nil {
		return nil, err
	}

	// 5. Look the customer up
	users, err := d.store.Select(ctx, models.TableUsers, "email = ?", database.Text(customer.Email))
	if err != nil {
		return nil, err
	}
	for _, row := range users {
		u := models.UserFromRow(row)
		fmt.Fprintf(d.out, "Found user: %s (%s)\n", u.Name, u.Email)
	}

	// 6. Order report
	rows, err := d.store.RawQuery(ctx, orderDetailsQuery, database.Int(res.OrderID))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		detail := models.OrderDetailFromRow(row)
		res.Details = append(res.Details, detail)
		fmt.Fprintf(d.out, "Order ID: %d\n", detail.OrderID)
		fmt.Fprintf(d.out, "Customer: %s\n", detail.UserName)
		fmt.Fprintf(d.out, "Product: %s\n", detail.ProductName)
		fmt.Fprintf(d.out, "Quantity: %d\n", detail.Quantity)
		fmt.Fprintf(d.out, "Total: %.2f\n", detail.TotalAmount)
	}

	// 7. One tablet left the shelf
	stock := database.NewColumns().Set("stock_quantity", database.Int(int64(product.StockQuantity-item.Quantity)))
	if _, err := d.store.Update(ctx, models.TableProducts, stock, "id = ?", database.Int(res.ProductID)); err != nil {
		return nil, err
	}

	// 8. Close the order
	status := database.NewColumns().Set("status", database.Text(string(models.OrderStatusCompleted)))
	if _, err := d.store.Update(ctx, models.TableOrders, status, "id = ?", database.Int(res.OrderID)); err != nil {
		return nil, err
	}

	d.logger.Info("demo completed",
		"user_id", res.UserID,
		"product_id", res.ProductID,
		"order_id", res.OrderID,
		"order_item_id", res.OrderItemID,
	)
	return res, nil
}

func (d *Demo) insert(ctx context.Context, table string, record any, cols *database.Columns) (int64, error) {
	if err := d.validator.Validate(record); err != nil {
		return 0, fmt.Errorf("invalid %s record: %w", table, err)
	}
	id, err := d.store.Insert(ctx, table, cols)
	if err != nil {
		return 0, err
	}
	d.logger.Debug("row inserted", "table", table, "id", id)
	return id, nil
}
