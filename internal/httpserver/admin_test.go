package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/session"
)

func TestAdminRoutesRequireSession(t *testing.T) {
	e, _ := newTestServer(t)

	for _, target := range []string{
		"/api/v1/admin/products",
		"/api/v1/admin/orders",
		"/api/v1/admin/customers",
		"/api/v1/admin/discount-codes",
		"/api/v1/admin/theme",
		"/api/v1/admin/analytics/summary",
	} {
		rec := doRequest(t, e, http.MethodGet, target, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, "target %s", target)
	}
}

func TestAdminRejectsForgedCookie(t *testing.T) {
	e, _ := newTestServer(t)

	forged, err := session.Issue([]byte("wrong-secret"), "admin", time.Now())
	require.NoError(t, err)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/admin/products", "",
		&http.Cookie{Name: session.CookieName, Value: forged})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginIssuesCookie(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/admin/login", `{"username":"root","password":"bootstrap-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	require.True(t, sessionCookie.HttpOnly)

	rec = doRequest(t, e, http.MethodGet, "/api/v1/admin/products", "", sessionCookie)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/admin/login", `{"username":"root","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, rec.Result().Cookies())
}

func TestAdminCreateProduct(t *testing.T) {
	e, _ := newTestServer(t)
	cookie := adminCookie(t, "root")

	body := `{"title": "Stone Mug", "price": 2499, "status": "active"}`
	rec := doRequest(t, e, http.MethodPost, "/api/v1/admin/products", body, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	var p models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, "stone-mug", p.Slug)

	rec = doRequest(t, e, http.MethodPost, "/api/v1/admin/products", body, cookie)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminCreateProductRejectsUnknownStatus(t *testing.T) {
	e, _ := newTestServer(t)
	cookie := adminCookie(t, "root")

	body := `{"title": "Stone Mug", "price": 2499, "status": "hidden"}`
	rec := doRequest(t, e, http.MethodPost, "/api/v1/admin/products", body, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminOrderTransition(t *testing.T) {
	e, r := newTestServer(t)
	cookie := adminCookie(t, "root")

	c := &models.Customer{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, r.DB.Create(c).Error)
	o := &models.Order{Number: "ORD-TEST1", CustomerID: c.ID, Status: models.OrderStatusPending, PaymentStatus: models.PaymentStatusUnpaid}
	require.NoError(t, r.DB.Create(o).Error)

	rec := doRequest(t, e, http.MethodPost, fmt.Sprintf("/api/v1/admin/orders/%d/status", o.ID), `{"status":"confirmed"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, e, http.MethodPost, fmt.Sprintf("/api/v1/admin/orders/%d/status", o.ID), `{"status":"delivered"}`, cookie)
	require.Equal(t, http.StatusConflict, rec.Code)

	var reloaded models.Order
	require.NoError(t, r.DB.First(&reloaded, o.ID).Error)
	require.Equal(t, models.OrderStatusConfirmed, reloaded.Status)
}

func TestAdminThemeUpdate(t *testing.T) {
	e, _ := newTestServer(t)
	cookie := adminCookie(t, "root")

	body := `{"preset": "midnight", "overrides": {"accent": "#ff00aa"}}`
	rec := doRequest(t, e, http.MethodPut, "/api/v1/admin/theme", body, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var theme struct {
		Preset string `json:"preset"`
		Theme  struct {
			Colors map[string]string `json:"colors"`
		} `json:"theme"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &theme))
	require.Equal(t, "midnight", theme.Preset)
	require.Equal(t, "#ff00aa", theme.Theme.Colors["accent"])

	rec = doRequest(t, e, http.MethodGet, "/api/v1/theme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &theme))
	require.Equal(t, "#ff00aa", theme.Theme.Colors["accent"])
}

func TestAdminThemeRejectsUnknownPreset(t *testing.T) {
	e, _ := newTestServer(t)
	cookie := adminCookie(t, "root")

	rec := doRequest(t, e, http.MethodPut, "/api/v1/admin/theme", `{"preset": "neon"}`, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminDedupeCustomers(t *testing.T) {
	e, r := newTestServer(t)
	cookie := adminCookie(t, "root")

	for i := 0; i < 3; i++ {
		require.NoError(t, r.DB.Create(&models.Customer{Name: "Ada", Email: "ada@example.com"}).Error)
	}
	require.NoError(t, r.DB.Create(&models.Customer{Name: "Grace", Email: "grace@example.com"}).Error)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/admin/customers/dedupe", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 2, body["removed"])

	var count int64
	require.NoError(t, r.DB.Model(&models.Customer{}).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestAdminCreateDiscountCodeConflict(t *testing.T) {
	e, _ := newTestServer(t)
	cookie := adminCookie(t, "root")

	body := `{"code": "SAVE10", "type": "percentage", "value": 1000}`
	rec := doRequest(t, e, http.MethodPost, "/api/v1/admin/discount-codes", body, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, e, http.MethodPost, "/api/v1/admin/discount-codes", body, cookie)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminUpdateDiscountCodeToTakenCode(t *testing.T) {
	e, r := newTestServer(t)
	cookie := adminCookie(t, "root")

	require.NoError(t, r.DB.Create(&models.DiscountCode{
		Code: "SAVE10", Type: models.DiscountTypePercentage, Value: 1000, Active: true,
	}).Error)
	other := &models.DiscountCode{Code: "WELCOME", Type: models.DiscountTypeFixed, Value: 500, Active: true}
	require.NoError(t, r.DB.Create(other).Error)

	body := `{"code": "SAVE10", "type": "fixed", "value": 500}`
	rec := doRequest(t, e, http.MethodPut, fmt.Sprintf("/api/v1/admin/discount-codes/%d", other.ID), body, cookie)
	require.Equal(t, http.StatusConflict, rec.Code)

	// renaming to an unused code still works
	body = `{"code": "WELCOME5", "type": "fixed", "value": 500}`
	rec = doRequest(t, e, http.MethodPut, fmt.Sprintf("/api/v1/admin/discount-codes/%d", other.ID), body, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminIssueRecommendationCode(t *testing.T) {
	e, r := newTestServer(t)
	cookie := adminCookie(t, "root")

	c := &models.Customer{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, r.DB.Create(c).Error)

	rec := doRequest(t, e, http.MethodPost, fmt.Sprintf("/api/v1/admin/customers/%d/recommendation-codes", c.ID), "", cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	var code models.RecommendationCode
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &code))
	require.Contains(t, code.Code, "REC-")
	require.Equal(t, c.ID, code.CustomerID)
}
