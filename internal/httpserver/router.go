package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Deps struct {
	DB             *gorm.DB
	SessionSecret  []byte
	Storefront     *StorefrontHTTP
	Checkout       *CheckoutHTTP
	Auth           *AuthHTTP
	AdminCatalog   *AdminCatalogHTTP
	AdminOrders    *AdminOrdersHTTP
	AdminCustomers *AdminCustomersHTTP
	AdminDiscounts *AdminDiscountsHTTP
	AdminTheme     *AdminThemeHTTP
	AdminUsers     *AdminUsersHTTP
	AdminAnalytics *AdminAnalyticsHTTP
	Uploads        *UploadsHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	// upload paths handed out by the admin upload endpoint resolve here
	e.GET("/uploads/:name", d.Uploads.Serve)

	v1 := e.Group("/api/v1")

	v1.GET("/products", d.Storefront.ListProducts)
	v1.GET("/products/:slug", d.Storefront.GetProductBySlug)
	v1.GET("/categories", d.Storefront.ListCategories)
	v1.GET("/search", d.Storefront.Search)
	v1.GET("/cross-sell", d.Storefront.CrossSellProducts)
	v1.GET("/validate-discount", d.Storefront.ValidateDiscount)
	v1.GET("/validate-recommendation", d.Storefront.ValidateRecommendation)
	v1.GET("/theme", d.Storefront.GetTheme)
	v1.POST("/events", d.Storefront.RecordEvent)

	v1.POST("/checkout", d.Checkout.Checkout)
	v1.GET("/orders/track", d.Checkout.Track)

	v1.POST("/admin/login", d.Auth.Login)
	v1.POST("/admin/logout", d.Auth.Logout)

	admin := v1.Group("/admin", RequireAdmin(d.SessionSecret))

	admin.GET("/products", d.AdminCatalog.ListProducts)
	admin.POST("/products", d.AdminCatalog.CreateProduct)
	admin.PATCH("/products/:id", d.AdminCatalog.PatchProduct)
	admin.DELETE("/products/:id", d.AdminCatalog.DeleteProduct)
	admin.POST("/products/reindex", d.AdminCatalog.ReindexProducts)

	admin.POST("/categories", d.AdminCatalog.CreateCategory)
	admin.PUT("/categories/:id", d.AdminCatalog.UpdateCategory)
	admin.DELETE("/categories/:id", d.AdminCatalog.DeleteCategory)

	admin.GET("/orders", d.AdminOrders.ListOrders)
	admin.GET("/orders/:id", d.AdminOrders.GetOrder)
	admin.POST("/orders/:id/status", d.AdminOrders.Transition)
	admin.POST("/orders/:id/payment-status", d.AdminOrders.SetPaymentStatus)
	admin.PUT("/orders/:id/note", d.AdminOrders.SetNote)

	admin.GET("/customers", d.AdminCustomers.ListCustomers)
	admin.GET("/customers/:id", d.AdminCustomers.GetCustomer)
	admin.PUT("/customers/:id", d.AdminCustomers.UpdateCustomer)
	admin.DELETE("/customers/:id", d.AdminCustomers.DeleteCustomer)
	admin.POST("/customers/dedupe", d.AdminCustomers.DedupeCustomers)
	admin.POST("/customers/:id/recommendation-codes", d.AdminCustomers.IssueRecommendationCode)
	admin.GET("/recommendation-codes", d.AdminCustomers.ListRecommendationCodes)

	admin.GET("/discount-codes", d.AdminDiscounts.ListDiscountCodes)
	admin.POST("/discount-codes", d.AdminDiscounts.CreateDiscountCode)
	admin.PUT("/discount-codes/:id", d.AdminDiscounts.UpdateDiscountCode)
	admin.DELETE("/discount-codes/:id", d.AdminDiscounts.DeleteDiscountCode)

	admin.GET("/theme", d.AdminTheme.GetTheme)
	admin.PUT("/theme", d.AdminTheme.UpdateTheme)
	admin.GET("/theme/presets", d.AdminTheme.ListPresets)
	admin.POST("/theme/palette", d.AdminTheme.SuggestPalette)

	admin.GET("/admins", d.AdminUsers.ListAdmins)
	admin.POST("/admins", d.AdminUsers.CreateAdmin)
	admin.DELETE("/admins/:id", d.AdminUsers.DeleteAdmin)

	admin.GET("/analytics/summary", d.AdminAnalytics.Summary)

	admin.POST("/uploads", d.Uploads.Upload)
}
