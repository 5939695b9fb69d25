package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"marroking/internal/models"
	"marroking/internal/services/meli"
)

// ErrNotFound means the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ProductStore is the read model and CRUD surface over the products table.
type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// ListFlat returns every row, synced rows before manually-entered ones,
// most recent first within each partition.
func (s *ProductStore) ListFlat() ([]models.Product, error) {
	var products []models.Product
	err := s.db.
		Order("CASE WHEN meli_id IS NULL OR meli_id = '' THEN 1 ELSE 0 END, id DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListGrouped partitions synced rows by the remote item id embedded in
// their meli_id and rebuilds one grouped view per remote item.
func (s *ProductStore) ListGrouped() ([]models.GroupedProduct, error) {
	var products []models.Product
	err := s.db.
		Where("meli_id IS NOT NULL AND meli_id <> ''").
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var groups []models.GroupedProduct
	index := make(map[string]int)

	for _, product := range products {
		parent := meli.ParentID(*product.MeliID)

		i, ok := index[parent]
		if !ok {
			i = len(groups)
			index[parent] = i
			groups = append(groups, models.GroupedProduct{
				MeliID: parent,
				Title:  meli.ParentTitle(product.Name),
				Status: product.Status,
			})
		}

		groups[i].Variations = append(groups[i].Variations, models.ProductVariation{
			Name:  product.Name,
			Price: product.Price,
			Stock: product.Stock,
		})
	}

	return groups, nil
}

func (s *ProductStore) Get(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

func (s *ProductStore) Create(product *models.Product) error {
	if err := s.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *ProductStore) Delete(id uint) error {
	result := s.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
