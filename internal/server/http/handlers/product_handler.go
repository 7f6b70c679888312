package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// ProductHandler serves catalog endpoints.
type ProductHandler struct {
	facade CatalogFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade CatalogFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c *gin.Context) {
	in, ok := bindProduct(c)
	if !ok {
		return
	}
	product, err := h.facade.CreateProduct(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "product")
		return
	}
	respondData(c, http.StatusCreated, toProductResponse(product))
}

// Replace handles PUT /api/products/:id.
func (h *ProductHandler) Replace(c *gin.Context) {
	in, ok := bindProduct(c)
	if !ok {
		return
	}
	product, err := h.facade.ReplaceProduct(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "product")
		return
	}
	respondData(c, http.StatusOK, toProductResponse(product))
}

// Patch handles PATCH /api/products/:id.
func (h *ProductHandler) Patch(c *gin.Context) {
	in, ok := bindProduct(c)
	if !ok {
		return
	}
	product, err := h.facade.PatchProduct(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "product")
		return
	}
	respondData(c, http.StatusOK, toProductResponse(product))
}

// Delete handles DELETE /api/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "product")
		return
	}
	c.Status(http.StatusNoContent)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "product")
		return
	}
	respondData(c, http.StatusOK, toProductResponse(product))
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		respondError(c, err, "product")
		return
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, toProductResponse(&products[i]))
	}
	respondData(c, http.StatusOK, resp)
}

func bindProduct(c *gin.Context) (model.ProductInput, bool) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return model.ProductInput{}, false
	}
	return model.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		UnitPrice:     req.UnitPrice,
		StockQuantity: stockQuantity(req.StockQuantity),
	}, true
}

// stockQuantity truncates fractional stock counts toward zero.
func stockQuantity(n *json.Number) *int64 {
	if n == nil {
		return nil
	}
	if v, err := n.Int64(); err == nil {
		return &v
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil
	}
	v := d.IntPart()
	return &v
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		UnitPrice:     p.UnitPrice.StringFixed(2),
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
