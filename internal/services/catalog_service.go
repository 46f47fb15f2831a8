package services

import (
	"encoding/json"
	"errors"
	"strings"

	"aquaroom/internal/domain"
	"aquaroom/internal/pricing"
	"aquaroom/internal/repos"

	"github.com/google/uuid"
)

var ErrDuplicateName = errors.New("name already in use")

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) CreateCategory(c domain.Category) (domain.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return domain.Category{}, &pricing.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Slug == "" {
		c.Slug = slugify(c.Name)
	}
	if _, err := s.Cats.ByName(c.Name); err == nil {
		return domain.Category{}, ErrDuplicateName
	}
	return c, s.Cats.Create(c)
}

func (s *CatalogService) UpdateCategory(c domain.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return &pricing.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if c.Slug == "" {
		c.Slug = slugify(c.Name)
	}
	if existing, err := s.Cats.ByName(c.Name); err == nil && existing.ID != c.ID {
		return ErrDuplicateName
	}
	return s.Cats.Update(c)
}

func (s *CatalogService) DeleteCategory(id string) error { return s.Cats.Delete(id) }

func (s *CatalogService) ListProducts(p repos.ListParams, categoryID string) ([]domain.Product, int, error) {
	return s.Prods.List(p, categoryID)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) CreateProduct(p domain.Product) (domain.Product, error) {
	if err := validateProduct(&p); err != nil {
		return domain.Product{}, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return p, s.Prods.Create(p)
}

func (s *CatalogService) UpdateProduct(p domain.Product) error {
	if err := validateProduct(&p); err != nil {
		return err
	}
	return s.Prods.Update(p)
}

func (s *CatalogService) SetProductActive(id string, active bool) error {
	return s.Prods.SetActive(id, active)
}

func (s *CatalogService) DeleteProduct(id string) error { return s.Prods.Delete(id) }

// PreviewShippingFee runs the fee calculator against a product's stored
// shipping configuration, for the admin form's live preview.
func (s *CatalogService) PreviewShippingFee(productID string, qty int, zone pricing.Zone, subtotal *float64) (float64, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return 0, err
	}
	return pricing.ShippingFee(ShippingConfigOf(p), qty, zone, subtotal)
}

// ShippingConfigOf maps a product row onto the calculator's input.
func ShippingConfigOf(p domain.Product) pricing.ShippingConfig {
	return pricing.ShippingConfig{
		HasSpecialShipping:    p.HasSpecialShipping,
		CostBangkok:           p.ShippingCostBangkok,
		CostProvinces:         p.ShippingCostProvinces,
		CostRemote:            p.ShippingCostRemote,
		SpecialBase:           p.SpecialShippingBase,
		SpecialQty:            p.SpecialShippingQty,
		SpecialExtra:          p.SpecialShippingExtra,
		FreeShippingThreshold: p.FreeShippingThreshold,
	}
}

func validateProduct(p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return &pricing.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if p.CategoryID == "" {
		return &pricing.ValidationError{Field: "categoryId", Msg: "must be set"}
	}
	if p.Price < 0 {
		return &pricing.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if p.Stock < 0 {
		return &pricing.ValidationError{Field: "stock", Msg: "must not be negative"}
	}
	if p.ImagesJSON == "" {
		p.ImagesJSON = "[]"
	}
	if !json.Valid([]byte(p.ImagesJSON)) {
		return &pricing.ValidationError{Field: "images", Msg: "must be a JSON array"}
	}
	if p.LowStockAt <= 0 {
		p.LowStockAt = 5
	}
	// The calculator refuses incomplete configs at compute time; reject
	// them at save time too so the form surfaces the problem immediately.
	if p.HasSpecialShipping {
		if p.SpecialShippingBase == nil || p.SpecialShippingQty == nil || p.SpecialShippingExtra == nil {
			return &pricing.ValidationError{Field: "specialShipping", Msg: "base, qty and extra are required"}
		}
		if *p.SpecialShippingBase < 0 || *p.SpecialShippingQty < 1 || *p.SpecialShippingExtra < 0 {
			return &pricing.ValidationError{Field: "specialShipping", Msg: "base/extra must be >= 0 and qty >= 1"}
		}
	} else {
		if p.ShippingCostBangkok == nil || p.ShippingCostProvinces == nil || p.ShippingCostRemote == nil {
			return &pricing.ValidationError{Field: "shippingCost", Msg: "all three zone rates are required"}
		}
	}
	if p.FreeShippingThreshold != nil && *p.FreeShippingThreshold < 0 {
		return &pricing.ValidationError{Field: "freeShippingThreshold", Msg: "must not be negative"}
	}
	return nil
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
