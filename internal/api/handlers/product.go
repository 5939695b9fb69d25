package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marroking/internal/logger"
	"marroking/internal/models"
	"marroking/internal/store"
)

type ProductHandler struct {
	products *store.ProductStore
	logger   *logger.Logger
}

func NewProductHandler(products *store.ProductStore, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger,
	}
}

// List returns the flat view: synced rows first, newest first.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.ListFlat()
	if err != nil {
		h.logger.Error("Failed to list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ListGrouped returns synced rows folded under their parent remote item.
func (h *ProductHandler) ListGrouped(c *gin.Context) {
	groups, err := h.products.ListGrouped()
	if err != nil {
		h.logger.Error("Failed to group products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}
	if groups == nil {
		groups = []models.GroupedProduct{}
	}
	c.JSON(http.StatusOK, gin.H{"products": groups})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.products.Get(uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("Failed to fetch product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Create inserts a manually-entered row; brand/size/color live only here,
// the sync never writes them.
func (h *ProductHandler) Create(c *gin.Context) {
	var input struct {
		Name  string  `json:"name" binding:"required"`
		Price float64 `json:"price" binding:"min=0"`
		Stock int     `json:"stock" binding:"min=0"`
		Brand *string `json:"brand"`
		Size  *string `json:"size"`
		Color *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.Product{
		Name:   input.Name,
		Price:  input.Price,
		Stock:  input.Stock,
		Status: "unknown",
		Brand:  input.Brand,
		Size:   input.Size,
		Color:  input.Color,
	}
	if err := h.products.Create(product); err != nil {
		h.logger.Error("Failed to create product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.products.Delete(uint(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("Failed to delete product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
