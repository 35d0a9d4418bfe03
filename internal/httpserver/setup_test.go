package httpserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
	"github.com/rivenshop/storefront/internal/service"
	"github.com/rivenshop/storefront/internal/session"
	"github.com/rivenshop/storefront/internal/validate"
)

var testSecret = []byte("test-session-secret")

func newTestServer(t *testing.T) (*echo.Echo, *repo.GormRepo) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	r := repo.New(db)

	discounts := &service.DiscountService{Repo: r}
	recommendations := &service.RecommendationService{Repo: r}
	orders := &service.OrderService{Repo: r}
	checkout := &service.CheckoutService{
		Repo:           r,
		Discounts:      discounts,
		Recommendation: recommendations,
	}
	catalog := &service.CatalogService{Repo: r}
	theme := &service.ThemeService{Repo: r}
	analytics := &service.AnalyticsService{Repo: r}
	admin := &service.AdminService{Repo: r, BootstrapUsername: "root", BootstrapPassword: "bootstrap-pass"}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validate.New()

	Register(e, &Deps{
		DB:            db,
		SessionSecret: testSecret,
		Storefront: &StorefrontHTTP{
			Repo:            r,
			CrossSell:       &service.CrossSellService{Repo: r},
			Discounts:       discounts,
			Recommendations: recommendations,
			Theme:           theme,
			Analytics:       analytics,
		},
		Checkout:       &CheckoutHTTP{Svc: checkout, Orders: orders},
		Auth:           &AuthHTTP{Admin: admin, Secret: testSecret},
		AdminCatalog:   &AdminCatalogHTTP{Svc: catalog, Repo: r},
		AdminOrders:    &AdminOrdersHTTP{Svc: orders, Repo: r},
		AdminCustomers: &AdminCustomersHTTP{Repo: r, Recommendations: recommendations},
		AdminDiscounts: &AdminDiscountsHTTP{Repo: r},
		AdminTheme:     &AdminThemeHTTP{Theme: theme},
		AdminUsers:     &AdminUsersHTTP{Svc: admin},
		AdminAnalytics: &AdminAnalyticsHTTP{Svc: analytics},
		Uploads:        &UploadsHTTP{Dir: t.TempDir()},
	})

	return e, r
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func adminCookie(t *testing.T, username string) *http.Cookie {
	t.Helper()
	token, err := session.Issue(testSecret, username, time.Now())
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: token}
}

func seedActiveProduct(t *testing.T, r *repo.GormRepo, title string, price int64) *models.Product {
	t.Helper()
	p := &models.Product{
		Title:  title,
		Slug:   service.Slugify(title),
		Price:  price,
		Status: models.ProductStatusActive,
	}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}
