package models

import (
	"time"
)

// Order statuses. Transitions between them are enforced by the status service.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

const (
	ProductStatusActive   = "active"
	ProductStatusDraft    = "draft"
	ProductStatusArchived = "archived"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Slug      string    `gorm:"unique;not null"          json:"slug"`
	SortOrder int       `gorm:"default:0"                json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// Product prices are integer minor-currency units (cents).
type Product struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title          string    `gorm:"not null"                 json:"title"`
	Slug           string    `gorm:"unique;not null"          json:"slug"`
	Description    string    `json:"description"`
	Price          int64     `gorm:"not null"                 json:"price"`
	CompareAtPrice *int64    `json:"compare_at_price,omitempty"`
	CategoryID     *uint     `gorm:"index"                    json:"category_id,omitempty"`
	Status         string    `gorm:"not null;default:draft;index" json:"status"`
	Tags           string    `json:"tags"`
	ImagePath      string    `json:"image_path"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Customer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Email     string    `gorm:"index"                    json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type Address struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID uint   `gorm:"index;not null"           json:"customer_id"`
	Line1      string `gorm:"not null"                 json:"line1"`
	Line2      string `json:"line2"`
	City       string `gorm:"not null"                 json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Order monetary fields are minor-currency units. ShippingAddress holds a
// denormalized JSON snapshot taken at checkout.
type Order struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Number             string    `gorm:"unique;not null"          json:"number"`
	CustomerID         uint      `gorm:"index;not null"           json:"customer_id"`
	Status             string    `gorm:"not null;index"           json:"status"`
	PaymentStatus      string    `gorm:"not null"                 json:"payment_status"`
	PaymentMethod      string    `json:"payment_method"`
	Subtotal           int64     `gorm:"not null"                 json:"subtotal"`
	DiscountTotal      int64     `gorm:"default:0"                json:"discount_total"`
	Shipping           int64     `gorm:"default:0"                json:"shipping"`
	Total              int64     `gorm:"not null"                 json:"total"`
	DiscountCode       string    `json:"discount_code,omitempty"`
	RecommendationCode string    `json:"recommendation_code,omitempty"`
	ShippingAddress    string    `json:"shipping_address"`
	Note               string    `json:"note"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint   `gorm:"index;not null"              json:"order_id"`
	ProductID uint   `gorm:"not null"                    json:"product_id"`
	Title     string `gorm:"not null"                    json:"title"`
	UnitPrice int64  `gorm:"not null"                    json:"unit_price"`
	Quantity  uint   `gorm:"default:1;check:quantity>0"  json:"quantity"`
	LineTotal int64  `gorm:"not null"                    json:"line_total"`
}

// StatusHistory is the append-only log of status and payment-status changes.
type StatusHistory struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    uint      `gorm:"index;not null"           json:"order_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `gorm:"not null"                 json:"to_status"`
	Actor      string    `gorm:"not null"                 json:"actor"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// DiscountCode value is basis points for percentage codes and minor-currency
// units for fixed codes. MaxUses/PerCustomerLimit of 0 mean unlimited.
type DiscountCode struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code             string     `gorm:"unique;not null"          json:"code"`
	Type             string     `gorm:"not null"                 json:"type"`
	Value            int64      `gorm:"not null"                 json:"value"`
	MaxUses          int        `gorm:"default:0"                json:"max_uses"`
	UsedCount        int        `gorm:"default:0"                json:"used_count"`
	PerCustomerLimit int        `gorm:"default:0"                json:"per_customer_limit"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	Active           bool       `gorm:"default:true"             json:"active"`
	CreatedAt        time.Time  `json:"created_at"`
}

type DiscountRedemption struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DiscountCodeID uint      `gorm:"index;not null"           json:"discount_code_id"`
	Email          string    `gorm:"index"                    json:"email"`
	OrderID        uint      `json:"order_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// RecommendationCode is a referral code issued to an existing customer.
type RecommendationCode struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code       string    `gorm:"unique;not null"          json:"code"`
	CustomerID uint      `gorm:"index;not null"           json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type RecommendationRedemption struct {
	ID                   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RecommendationCodeID uint      `gorm:"index;not null"           json:"recommendation_code_id"`
	Email                string    `gorm:"index;not null"           json:"email"`
	OrderID              uint      `json:"order_id"`
	CreatedAt            time.Time `json:"created_at"`
}

type AdminUser struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ThemeSetting stores the selected preset name plus a JSON map of color-token
// overrides. A single row (ID 1) holds the store-wide theme.
type ThemeSetting struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Preset    string    `gorm:"not null"        json:"preset"`
	Overrides string    `json:"overrides"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AnalyticsEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      string    `gorm:"not null;index"           json:"type"`
	Path      string    `json:"path"`
	ProductID *uint     `json:"product_id,omitempty"`
	CreatedAt time.Time `gorm:"index"                    json:"created_at"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&Category{}, &Product{}, &Customer{}, &Address{},
		&Order{}, &OrderItem{}, &StatusHistory{},
		&DiscountCode{}, &DiscountRedemption{},
		&RecommendationCode{}, &RecommendationRedemption{},
		&AdminUser{}, &ThemeSetting{}, &AnalyticsEvent{},
	}
}
