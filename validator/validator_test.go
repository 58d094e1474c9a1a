package validator

import (
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestConnectionRequest struct {
	Driver   string `json:"driver" validate:"required,sqldriver"`
	Database string `json:"database" validate:"required,max=64"`
	Port     int    `json:"port" validate:"gte=0,lte=65535"`
}

type TestSessionRequest struct {
	Charset   string `json:"charset" validate:"required,sqlname"`
	Collation string `json:"collation" validate:"required,sqlname"`
}

type TestLineItem struct {
	Product  string  `json:"product" validate:"required"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Quantity int     `json:"quantity" validate:"gte=1"`
	Price    float64 `json:"price" validate:"money"`
	Status   string  `json:"status" validate:"oneof=Pending Completed"`
}

func TestValidator_Connection(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       TestConnectionRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Registered driver",
			req:       TestConnectionRequest{Driver: "sqlite3", Database: "shop.db", Port: 0},
			wantError: false,
		},
		{
			name:      "Missing driver",
			req:       TestConnectionRequest{Database: "shop.db"},
			wantError: true,
			errorMsg:  "driver is required",
		},
		{
			name:      "Unknown driver",
			req:       TestConnectionRequest{Driver: "oracle", Database: "shop.db"},
			wantError: true,
			errorMsg:  "driver must be a registered SQL driver",
		},
		{
			name:      "Missing database",
			req:       TestConnectionRequest{Driver: "sqlite3"},
			wantError: true,
			errorMsg:  "database is required",
		},
		{
			name:      "Port out of range",
			req:       TestConnectionRequest{Driver: "sqlite3", Database: "shop.db", Port: 70000},
			wantError: true,
			errorMsg:  "port must be less than or equal to 65535",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Session(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       TestSessionRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Plain names",
			req:       TestSessionRequest{Charset: "utf8mb4", Collation: "utf8mb4_unicode_ci"},
			wantError: false,
		},
		{
			name:      "Statement smuggled into collation",
			req:       TestSessionRequest{Charset: "utf8mb4", Collation: "utf8mb4_bin; DROP TABLE users"},
			wantError: true,
			errorMsg:  "collation may only contain letters, digits and underscores",
		},
		{
			name:      "Quote in charset",
			req:       TestSessionRequest{Charset: "utf8'", Collation: "utf8_bin"},
			wantError: true,
			errorMsg:  "charset may only contain",
		},
		{
			name:      "Empty charset",
			req:       TestSessionRequest{Collation: "utf8_bin"},
			wantError: true,
			errorMsg:  "charset is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_LineItem(t *testing.T) {
	v := New()

	valid := TestLineItem{Product: "Tablet", Quantity: 1, Price: 1200.00, Status: "Pending"}

	tests := []struct {
		name      string
		mutate    func(*TestLineItem)
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid line item",
			mutate:    func(*TestLineItem) {},
			wantError: false,
		},
		{
			name:      "Cents are fine",
			mutate:    func(i *TestLineItem) { i.Price = 19.99 },
			wantError: false,
		},
		{
			name:      "Zero price is fine",
			mutate:    func(i *TestLineItem) { i.Price = 0 },
			wantError: false,
		},
		{
			name:      "Negative price",
			mutate:    func(i *TestLineItem) { i.Price = -1 },
			wantError: true,
			errorMsg:  "price must be a non-negative amount",
		},
		{
			name:      "Fractional cents",
			mutate:    func(i *TestLineItem) { i.Price = 1.005 },
			wantError: true,
			errorMsg:  "at most two decimals",
		},
		{
			name:      "Zero quantity",
			mutate:    func(i *TestLineItem) { i.Quantity = 0 },
			wantError: true,
			errorMsg:  "quantity must be greater than or equal to 1",
		},
		{
			name:      "Bad email",
			mutate:    func(i *TestLineItem) { i.Email = "not-an-email" },
			wantError: true,
			errorMsg:  "email must be a valid email address",
		},
		{
			name:      "Unknown status",
			mutate:    func(i *TestLineItem) { i.Status = "Lost" },
			wantError: true,
			errorMsg:  "status must be one of: Pending Completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := v.Validate(&req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_ReturnsFieldDetails(t *testing.T) {
	v := New()

	err := v.Validate(&TestConnectionRequest{Driver: "oracle", Database: "shop.db"})
	require.Error(t, err)

	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 1)
	assert.Equal(t, "driver", errs[0].Field)
	assert.Equal(t, "sqldriver", errs[0].Tag)
	assert.Equal(t, "oracle", errs[0].Value)
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required", Tag: "required"},
		{Field: "price", Message: "price must be valid", Tag: "money"},
	}

	errMsg := errs.Error()
	assert.Contains(t, errMsg, "name is required")
	assert.Contains(t, errMsg, "price must be valid")
}
