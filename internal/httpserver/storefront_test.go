package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivenshop/storefront/internal/models"
)

func TestListProductsOnlyActive(t *testing.T) {
	e, r := newTestServer(t)

	seedActiveProduct(t, r, "Stone Mug", 2499)
	draft := &models.Product{Title: "Hidden", Slug: "hidden", Price: 100, Status: models.ProductStatusDraft}
	require.NoError(t, r.DB.Create(draft).Error)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []models.Product `json:"data"`
		Meta map[string]any   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Equal(t, "Stone Mug", body.Data[0].Title)
	require.EqualValues(t, 1, body.Meta["total"])
}

func TestGetProductBySlug(t *testing.T) {
	e, r := newTestServer(t)
	seedActiveProduct(t, r, "Stone Mug", 2499)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/products/stone-mug", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var p models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, int64(2499), p.Price)
}

func TestGetProductBySlugHidesDrafts(t *testing.T) {
	e, r := newTestServer(t)
	draft := &models.Product{Title: "Hidden", Slug: "hidden", Price: 100, Status: models.ProductStatusDraft}
	require.NoError(t, r.DB.Create(draft).Error)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/products/hidden", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidateDiscountEndpoint(t *testing.T) {
	e, r := newTestServer(t)
	require.NoError(t, r.DB.Create(&models.DiscountCode{
		Code: "SAVE10", Type: models.DiscountTypePercentage, Value: 1000, Active: true,
	}).Error)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/validate-discount?code=SAVE10&subtotal=5000", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, true, body["valid"])
	require.EqualValues(t, 500, body["amount"])
}

func TestValidateDiscountUnknownCode(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/validate-discount?code=NOPE&subtotal=5000", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidateDiscountInactiveCode(t *testing.T) {
	e, r := newTestServer(t)
	require.NoError(t, r.DB.Create(&models.DiscountCode{
		Code: "OLD", Type: models.DiscountTypeFixed, Value: 500, Active: false,
	}).Error)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/validate-discount?code=OLD&subtotal=5000", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThemeEndpointReturnsDefault(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/theme", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Preset string `json:"preset"`
		Theme  struct {
			Colors map[string]string `json:"colors"`
			Fonts  map[string]string `json:"fonts"`
		} `json:"theme"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "default", body.Preset)
	require.NotEmpty(t, body.Theme.Colors)
	require.NotEmpty(t, body.Theme.Fonts)
}

func TestCrossSellRequiresProducts(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(t, e, http.MethodGet, "/api/v1/cross-sell", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordEventAccepted(t *testing.T) {
	e, r := newTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/events", `{"type":"page_view","path":"/products/stone-mug"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var count int64
	require.NoError(t, r.DB.Model(&models.AnalyticsEvent{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestRecordEventRequiresPath(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/v1/events", `{"type":"page_view"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
