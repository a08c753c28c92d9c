package handlers

import (
	"context"
	"errors"
	"net/http"

	"taskhub/internal/domain"
	"taskhub/internal/logger"
	"taskhub/internal/repository"

	"github.com/gin-gonic/gin"
)

// RootMessage is what GET / answers with.
const RootMessage = "Hello from Node!!!"

// ProductStore is the persistence the product endpoints need.
type ProductStore interface {
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	repo ProductStore
}

func NewProductHandler(repo ProductStore) *ProductHandler {
	return &ProductHandler{repo: repo}
}

type createProductRequest struct {
	Name     string   `json:"name" binding:"required"`
	Quantity int      `json:"quantity" binding:"gte=0"`
	Price    *float64 `json:"price" binding:"required,gte=0"`
	Image    string   `json:"image"`
}

type updateProductRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=1"`
	Quantity *int     `json:"quantity" binding:"omitempty,gte=0"`
	Price    *float64 `json:"price" binding:"omitempty,gte=0"`
	Image    *string  `json:"image"`
}

func (h *ProductHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	logger.Error("product store error", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}

// Root is the plain-text liveness string
func (h *ProductHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, RootMessage)
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) PostProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	p := &domain.Product{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    *req.Price,
		Image:    req.Image,
	}
	if err := h.repo.Create(c.Request.Context(), p); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) PutProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	p, err := h.repo.Update(c.Request.Context(), c.Param("id"), domain.ProductPatch{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		Image:    req.Image,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
