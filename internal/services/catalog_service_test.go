package services_test

import (
	"errors"
	"testing"

	"aquaroom/internal/domain"
	"aquaroom/internal/pricing"
	"aquaroom/internal/repos"
	"aquaroom/internal/services"
)

func newCatalogSvc(t *testing.T) *services.CatalogService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db))
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestProductShippingConfigRoundTrip(t *testing.T) {
	svc := newCatalogSvc(t)

	created, err := svc.CreateProduct(domain.Product{
		CategoryID:            "aquarium-tanks",
		Name:                  "120cm Tank",
		Price:                 4590,
		Stock:                 3,
		HasSpecialShipping:    true,
		SpecialShippingBase:   fptr(80),
		SpecialShippingQty:    iptr(4),
		SpecialShippingExtra:  fptr(10),
		FreeShippingThreshold: fptr(5000),
		DeliveryTime:          "3-5 วัน",
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetProduct(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasSpecialShipping {
		t.Fatal("special shipping flag lost on round-trip")
	}
	if got.SpecialShippingBase == nil || *got.SpecialShippingBase != 80 ||
		got.SpecialShippingQty == nil || *got.SpecialShippingQty != 4 ||
		got.SpecialShippingExtra == nil || *got.SpecialShippingExtra != 10 {
		t.Fatalf("tier config changed on round-trip: %+v", got)
	}
	if got.FreeShippingThreshold == nil || *got.FreeShippingThreshold != 5000 {
		t.Fatalf("free shipping threshold changed: %+v", got.FreeShippingThreshold)
	}

	// The stored config must drive the calculator exactly as entered:
	// qty 10 with threshold 4, base 80, extra 10 is 80 + 6*10.
	fee, err := svc.PreviewShippingFee(created.ID, 10, pricing.ZoneBangkok, nil)
	if err != nil {
		t.Fatal(err)
	}
	if fee != 140 {
		t.Fatalf("expected fee 140, got %v", fee)
	}
}

func TestCreateProductRejectsIncompleteShippingConfig(t *testing.T) {
	svc := newCatalogSvc(t)

	_, err := svc.CreateProduct(domain.Product{
		CategoryID:          "aquarium-tanks",
		Name:                "Broken Tier",
		Price:               100,
		HasSpecialShipping:  true,
		SpecialShippingBase: fptr(80),
		// qty and extra missing
	})
	var ve *pricing.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Field != "specialShipping" {
		t.Fatalf("unexpected field %q", ve.Field)
	}

	_, err = svc.CreateProduct(domain.Product{
		CategoryID:            "filters",
		Name:                  "No Remote Rate",
		Price:                 100,
		ShippingCostBangkok:   fptr(50),
		ShippingCostProvinces: fptr(80),
		// remote rate missing
	})
	if !errors.As(err, &ve) || ve.Field != "shippingCost" {
		t.Fatalf("expected shippingCost validation error, got %v", err)
	}
}

func TestCategorySlugGenerated(t *testing.T) {
	svc := newCatalogSvc(t)
	c, err := svc.CreateCategory(domain.Category{Name: "Air Pumps & Stones"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Slug != "air-pumps-stones" {
		t.Fatalf("unexpected slug %q", c.Slug)
	}
}

func TestCategoryDuplicateNameRejected(t *testing.T) {
	svc := newCatalogSvc(t)

	first, err := svc.CreateCategory(domain.Category{Name: "Air Pumps"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateCategory(domain.Category{Name: "air pumps"}); !errors.Is(err, services.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName for case-insensitive duplicate, got %v", err)
	}

	second, err := svc.CreateCategory(domain.Category{Name: "Heaters"})
	if err != nil {
		t.Fatal(err)
	}
	// Renaming onto another category's name must collide too.
	second.Name = "AIR PUMPS"
	if err := svc.UpdateCategory(second); !errors.Is(err, services.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName on rename collision, got %v", err)
	}
	// Re-saving a category under its own name stays allowed.
	if err := svc.UpdateCategory(first); err != nil {
		t.Fatalf("self-rename rejected: %v", err)
	}
}
