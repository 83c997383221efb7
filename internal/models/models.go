package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Product represents a catalog entry. Korean name/description are the primary
// fields; the En variants are the transliterated/English forms shown alongside.
type Product struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	NameEn        string    `db:"name_en" json:"nameEn"`
	Category      string    `db:"category" json:"category"`
	Description   string    `db:"description" json:"description"`
	DescriptionEn string    `db:"description_en" json:"descriptionEn"`
	Price         int64     `db:"price" json:"price"`
	Image         string    `db:"image" json:"image"`
	Available     bool      `db:"available" json:"available"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Product categories
const (
	CategoryBread       = "bread"
	CategoryRiceCake    = "ricecake"
	CategoryTraditional = "traditional"
)

// Category is one entry of the fixed category list.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"nameEn"`
}

// Categories returns the fixed category list served by the API.
func Categories() []Category {
	return []Category{
		{ID: CategoryBread, Name: "빵", NameEn: "Bread"},
		{ID: CategoryRiceCake, Name: "떡", NameEn: "Rice Cake"},
		{ID: CategoryTraditional, Name: "전통 과자", NameEn: "Traditional Sweets"},
	}
}

// ValidCategory reports whether c is one of the enumerated categories.
func ValidCategory(c string) bool {
	return c == CategoryBread || c == CategoryRiceCake || c == CategoryTraditional
}

// OrderItem is a line item with the product name and unit price snapshotted
// at order creation. Prices are never re-read from the catalog afterwards.
type OrderItem struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	NameEn    string `json:"nameEn"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// CustomerInfo is the delivery contact embedded in an order.
type CustomerInfo struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	ZipCode         string `json:"zipCode"`
	Address         string `json:"address"`
	DetailAddress   string `json:"detailAddress"`
	DeliveryMessage string `json:"deliveryMessage,omitempty"`
}

// Order represents a customer order. Items and customer info are stored as
// jsonb columns so the row keeps the same embedded shape it is served in.
type Order struct {
	ID             int64         `db:"id" json:"id"`
	OrderNumber    string        `db:"order_number" json:"orderNumber"`
	Items          OrderItems    `db:"items" json:"items"`
	Customer       CustomerDoc   `db:"customer" json:"customerInfo"`
	Subtotal       int64         `db:"subtotal" json:"subtotal"`
	ShippingFee    int64         `db:"shipping_fee" json:"shippingFee"`
	Total          int64         `db:"total" json:"total"`
	Status         string        `db:"status" json:"status"`
	TrackingNumber string        `db:"tracking_number" json:"trackingNumber,omitempty"`
	Notes          string        `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updatedAt"`
	ShippedAt      *time.Time    `db:"shipped_at" json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time    `db:"delivered_at" json:"deliveredAt,omitempty"`
}

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the six enumerated statuses.
func ValidStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItems is the jsonb wrapper for an order's item list.
type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *OrderItems) Scan(src interface{}) error {
	return scanJSON(src, o)
}

// CustomerDoc is the jsonb wrapper for the embedded customer info.
type CustomerDoc CustomerInfo

func (c CustomerDoc) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *CustomerDoc) Scan(src interface{}) error {
	return scanJSON(src, c)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

// ContactMessage is a contact-form submission. It is never persisted; it
// exists only for the duration of the notification dispatch.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// CafeContact is the contact block of the static site info.
type CafeContact struct {
	Instagram    string `json:"instagram"`
	InstagramURL string `json:"instagramUrl"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	AddressEn    string `json:"addressEn"`
}

// CafeInfo is the static site/contact metadata served by /api/info.
type CafeInfo struct {
	Name          string      `json:"name"`
	NameEn        string      `json:"nameEn"`
	Tagline       string      `json:"tagline"`
	TaglineEn     string      `json:"taglineEn"`
	Description   string      `json:"description"`
	DescriptionEn string      `json:"descriptionEn"`
	Contact       CafeContact `json:"contact"`
}
