package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return repo.New(db)
}

func seedProduct(t *testing.T, r *repo.GormRepo, title string, price int64, status string) *models.Product {
	t.Helper()
	p := &models.Product{
		Title:  title,
		Slug:   Slugify(title),
		Price:  price,
		Status: status,
	}
	if err := r.DB.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func seedCustomer(t *testing.T, r *repo.GormRepo, name, email string) *models.Customer {
	t.Helper()
	c := &models.Customer{Name: name, Email: email}
	if err := r.DB.Create(c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

func seedOrder(t *testing.T, r *repo.GormRepo, customerID uint, status string) *models.Order {
	t.Helper()
	o := &models.Order{
		Number:        "ORD-TEST" + time.Now().Format("150405.000000"),
		CustomerID:    customerID,
		Status:        status,
		PaymentStatus: models.PaymentStatusUnpaid,
		Subtotal:      1000,
		Total:         1000,
	}
	if err := r.DB.Create(o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return o
}
