package transport

import "github.com/rivenshop/storefront/internal/service"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CheckoutRequest struct {
	Name               string                  `json:"name" validate:"required"`
	Email              string                  `json:"email" validate:"omitempty,email"`
	Phone              string                  `json:"phone"`
	Address            service.CheckoutAddress `json:"address"`
	PaymentMethod      string                  `json:"payment_method" validate:"required"`
	Items              []CheckoutItemRequest   `json:"items" validate:"required,min=1,dive"`
	DiscountCode       string                  `json:"discount_code"`
	RecommendationCode string                  `json:"recommendation_code"`
}

type CheckoutItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  uint `json:"quantity" validate:"required,min=1"`
}

type CreateProductRequest struct {
	Title          string `json:"title" validate:"required"`
	Slug           string `json:"slug"`
	Description    string `json:"description"`
	Price          int64  `json:"price" validate:"min=0"`
	CompareAtPrice *int64 `json:"compare_at_price"`
	CategoryID     *uint  `json:"category_id"`
	Status         string `json:"status" validate:"omitempty,oneof=active draft archived"`
	Tags           string `json:"tags"`
	ImagePath      string `json:"image_path"`
}

type PatchProductRequest struct {
	Title          *string `json:"title"`
	Slug           *string `json:"slug"`
	Description    *string `json:"description"`
	Price          *int64  `json:"price"`
	CompareAtPrice *int64  `json:"compare_at_price"`
	CategoryID     *uint   `json:"category_id"`
	Status         *string `json:"status" validate:"omitempty,oneof=active draft archived"`
	Tags           *string `json:"tags"`
	ImagePath      *string `json:"image_path"`
}

type CategoryRequest struct {
	Name      string `json:"name" validate:"required"`
	Slug      string `json:"slug"`
	SortOrder int    `json:"sort_order"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

type PaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=unpaid paid refunded"`
	Note          string `json:"note"`
}

type OrderNoteRequest struct {
	Note string `json:"note"`
}

type CustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type DiscountCodeRequest struct {
	Code             string `json:"code" validate:"required"`
	Type             string `json:"type" validate:"required,oneof=percentage fixed"`
	Value            int64  `json:"value" validate:"min=0"`
	MaxUses          int    `json:"max_uses" validate:"min=0"`
	PerCustomerLimit int    `json:"per_customer_limit" validate:"min=0"`
	ExpiresAt        string `json:"expires_at"`
	Active           *bool  `json:"active"`
}

type ThemeRequest struct {
	Preset    string            `json:"preset" validate:"required"`
	Overrides map[string]string `json:"overrides"`
}

type PaletteRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

type AnalyticsEventRequest struct {
	Type      string `json:"type"`
	Path      string `json:"path" validate:"required"`
	ProductID *uint  `json:"product_id"`
}
