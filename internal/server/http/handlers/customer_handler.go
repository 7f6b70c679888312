package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// CustomerHandler serves customer endpoints.
type CustomerHandler struct {
	facade CustomerFacade
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(facade CustomerFacade) *CustomerHandler {
	return &CustomerHandler{facade: facade}
}

// Create handles POST /api/customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}
	customer, err := h.facade.CreateCustomer(c.Request.Context(), toCustomerInput(req))
	if err != nil {
		respondError(c, err, "customer")
		return
	}
	respondData(c, http.StatusCreated, toCustomerResponse(customer))
}

// Update handles PUT /api/customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}
	customer, err := h.facade.UpdateCustomer(c.Request.Context(), c.Param("id"), toCustomerInput(req))
	if err != nil {
		respondError(c, err, "customer")
		return
	}
	respondData(c, http.StatusOK, toCustomerResponse(customer))
}

// Delete handles DELETE /api/customers/:id.
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "customer")
		return
	}
	c.Status(http.StatusNoContent)
}

// Get handles GET /api/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.facade.Customer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "customer")
		return
	}
	respondData(c, http.StatusOK, toCustomerResponse(customer))
}

// List handles GET /api/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.facade.Customers(c.Request.Context())
	if err != nil {
		respondError(c, err, "customer")
		return
	}
	resp := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resp = append(resp, toCustomerResponse(&customers[i]))
	}
	respondData(c, http.StatusOK, resp)
}

func toCustomerInput(req dto.CustomerRequest) model.CustomerInput {
	return model.CustomerInput{Name: req.Name, Phone: req.Phone, Email: req.Email}
}

func toCustomerResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
