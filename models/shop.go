package models

import (
	"query-gateway/database"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Table names of the demo schema.
const (
	TableUsers      = "users"
	TableProducts   = "products"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
)

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	PasswordHash string `json:"password_hash" validate:"required"`
}

type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name" validate:"required,max=100"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"money"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
}

type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id" validate:"gt=0"`
	TotalAmount float64     `json:"total_amount" validate:"money"`
	Status      OrderStatus `json:"status" validate:"oneof=Pending Completed Cancelled"`
}

type OrderItem struct {
	ID           int64   `json:"id"`
	OrderID      int64   `json:"order_id" validate:"gt=0"`
	ProductID    int64   `json:"product_id" validate:"gt=0"`
	Quantity     int     `json:"quantity" validate:"gte=1"`
	PricePerUnit float64 `json:"price_per_unit" validate:"money"`
}

// OrderDetail is one line of the order report joining all four tables.
type OrderDetail struct {
	OrderID      int64       `json:"id"`
	UserName     string      `json:"user_name"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status"`
	ProductName  string      `json:"product_name"`
	Quantity     int         `json:"quantity"`
	PricePerUnit float64     `json:"price_per_unit"`
}

// Columns returns the insertable columns; the generated id is left out.
func (u User) Columns() *database.Columns {
	return database.NewColumns().
		Set("name", database.Text(u.Name)).
		Set("email", database.Text(u.Email)).
		Set("password_hash", database.Text(u.PasswordHash))
}

func (p Product) Columns() *database.Columns {
	return database.NewColumns().
		Set("name", database.Text(p.Name)).
		Set("description", database.Text(p.Description)).
		Set("price", database.Float(p.Price)).
		Set("stock_quantity", database.Int(int64(p.StockQuantity)))
}

func (o Order) Columns() *database.Columns {
	return database.NewColumns().
		Set("user_id", database.Int(o.UserID)).
		Set("total_amount", database.Float(o.TotalAmount)).
		Set("status", database.Text(string(o.Status)))
}

func (i OrderItem) Columns() *database.Columns {
	return database.NewColumns().
		Set("order_id", database.Int(i.OrderID)).
		Set("product_id", database.Int(i.ProductID)).
		Set("quantity", database.Int(int64(i.Quantity))).
		Set("price_per_unit", database.Float(i.PricePerUnit))
}

func UserFromRow(r database.Row) User {
	return User{
		ID:           intCol(r, "id"),
		Name:         r.Text("name"),
		Email:        r.Text("email"),
		PasswordHash: r.Text("password_hash"),
	}
}

func OrderDetailFromRow(r database.Row) OrderDetail {
	return OrderDetail{
		OrderID:      intCol(r, "id"),
		UserName:     r.Text("user_name"),
		TotalAmount:  floatCol(r, "total_amount"),
		Status:       OrderStatus(r.Text("status")),
		ProductName:  r.Text("product_name"),
		Quantity:     int(intCol(r, "quantity")),
		PricePerUnit: floatCol(r, "price_per_unit"),
	}
}

func intCol(r database.Row, name string) int64 {
	v, _ := r.Get(name)
	if n, ok := v.AsInt(); ok {
		return n
	}
	// DECIMAL-backed or text ids
	f, _ := v.AsFloat()
	return int64(f)
}

func floatCol(r database.Row, name string) float64 {
	v, _ := r.Get(name)
	f, _ := v.AsFloat()
	return f
}
