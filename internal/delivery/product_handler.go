package delivery

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Shoxzn12/level-up-pc/internal/domain"
	"github.com/Shoxzn12/level-up-pc/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

// RegisterRoutes mounts the catalog under router; admin guards the mutating routes.
func (h *ProductHandler) RegisterRoutes(router gin.IRouter, admin gin.HandlerFunc) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)
		products.POST("", admin, h.CreateProduct)
		products.PATCH("/:id/stock", admin, h.UpdateStock)
		products.DELETE("/:id", admin, h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	store, err := h.useCase.ListCatalog()
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.useCase.GetProductByID(id)
	if err != nil {
		h.log.Warnf("Failed to get product by ID %d: %v", id, err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := bindStrictJSON(c, &req); err != nil {
		h.log.Warnf("Failed to bind JSON for create product: %v", err)
		writeError(c, err)
		return
	}

	created, err := h.useCase.CreateProduct(req)
	if err != nil {
		h.log.Warnf("Failed to create product '%s': %v", req.Name, err)
		writeError(c, err)
		return
	}

	h.log.Infof("Product created successfully: ID %d, Name %s", created.ID, created.Name)
	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req domain.UpdateStockRequest
	if err := bindStrictJSON(c, &req); err != nil {
		h.log.Warnf("Failed to bind JSON for stock update of product ID %d: %v", id, err)
		writeError(c, err)
		return
	}

	res, err := h.useCase.UpdateStock(id, req)
	if err != nil {
		h.log.Warnf("Failed to update stock for product ID %d: %v", id, err)
		writeError(c, err)
		return
	}

	h.log.Infof("Stock updated: product ID %d now %d", res.ID, res.Stock)
	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	removed, err := h.useCase.DeleteProduct(id)
	if err != nil {
		h.log.Warnf("Failed to delete product ID %d: %v", id, err)
		writeError(c, err)
		return
	}

	h.log.Infof("Product deleted successfully: ID %d", id)
	c.JSON(http.StatusOK, domain.DeleteResponse{Removed: *removed})
}

func (h *ProductHandler) parseID(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid product ID parameter: %s", idStr)
		writeError(c, fmt.Errorf("invalid product id %q: %w", idStr, domain.ErrValidation))
		return 0, false
	}
	return id, true
}
