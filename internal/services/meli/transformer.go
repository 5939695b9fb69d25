package meli

import (
	"fmt"
	"strings"

	"marroking/internal/models"
)

type Transformer struct{}

func NewTransformer() *Transformer {
	return &Transformer{}
}

// Normalize converts a remote item into local product rows: one row for a
// plain item, one row per variation otherwise. Variations share the item's
// price and carry a composite "{itemID}-{variationID}" remote id.
func (t *Transformer) Normalize(item *Item) []models.Product {
	if len(item.Variations) == 0 {
		meliID := item.ID
		return []models.Product{{
			Name:   item.Title,
			Price:  item.Price,
			Stock:  item.AvailableQuantity,
			MeliID: &meliID,
			Status: item.Status,
		}}
	}

	products := make([]models.Product, 0, len(item.Variations))
	for _, variation := range item.Variations {
		meliID := fmt.Sprintf("%s-%s", item.ID, variation.ID)
		products = append(products, models.Product{
			Name:   variationName(item.Title, variation),
			Price:  item.Price,
			Stock:  variation.AvailableQuantity,
			MeliID: &meliID,
			Status: item.Status,
		})
	}
	return products
}

// variationName renders "{title} ({value names joined by " - "})", in the
// order the attribute combinations were declared.
func variationName(title string, variation Variation) string {
	values := make([]string, 0, len(variation.AttributeCombinations))
	for _, attr := range variation.AttributeCombinations {
		if attr.ValueName != "" {
			values = append(values, attr.ValueName)
		}
	}
	if len(values) == 0 {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, strings.Join(values, " - "))
}

// ParentTitle strips the trailing parenthesized variation suffix from a
// row name, recovering the parent item's title.
func ParentTitle(name string) string {
	if !strings.HasSuffix(name, ")") {
		return name
	}
	idx := strings.LastIndex(name, " (")
	if idx < 0 {
		return name
	}
	return name[:idx]
}

// ParentID returns the remote item id embedded in a composite
// "{itemID}-{variationID}" identifier; an id without "-" is its own parent.
func ParentID(meliID string) string {
	if parent, _, found := strings.Cut(meliID, "-"); found {
		return parent
	}
	return meliID
}
