package catalog

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	entity "barpos.GO/model/entity"
)

// ErrProductNotFound is returned for lookups of unknown product ids.
var ErrProductNotFound = errors.New("product not found")

// CatalogRepository manages the product catalog. The order workflow only
// reads it (price freeze at sale time); CRUD serves the admin surface.
type CatalogRepository struct {
	db *gorm.DB
}

var (
	mu        sync.Mutex
	instances = make(map[*gorm.DB]*CatalogRepository)
)

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetCatalogRepository returns the shared instance for a DB handle.
func GetCatalogRepository(db *gorm.DB) *CatalogRepository {
	mu.Lock()
	defer mu.Unlock()
	if r, ok := instances[db]; ok {
		return r
	}
	r := NewCatalogRepository(db)
	instances[db] = r
	return r
}

// FindAll returns the catalog ordered by id.
func (r *CatalogRepository) FindAll() ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.Order("id ASC").Find(&products).Error
	return products, err
}

func (r *CatalogRepository) FindByID(id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Exists reports whether a product id is in the catalog.
func (r *CatalogRepository) Exists(id uint) (bool, error) {
	var n int64
	err := r.db.Model(&entity.Product{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// GetCurrentPrice returns the live catalog price. The order manager copies
// it onto the line item; nothing reads it back after the sale.
func (r *CatalogRepository) GetCurrentPrice(id uint) (decimal.Decimal, error) {
	p, err := r.FindByID(id)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Price, nil
}

// Create inserts a product together with its zero-stock inventory row.
func (r *CatalogRepository) Create(name string, price decimal.Decimal) (*entity.Product, error) {
	p := entity.Product{Name: name, Price: price}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		return tx.Create(&entity.Inventory{ProductID: p.ID, Stock: 0}).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) Update(id uint, name string, price decimal.Decimal) (*entity.Product, error) {
	p, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.Price = price
	if err := r.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product and its inventory row. Callers must have checked
// the product has no sale or movement history first.
func (r *CatalogRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&entity.Inventory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}
