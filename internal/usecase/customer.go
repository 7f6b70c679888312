package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CustomerUseCase manages the customer list.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	now       func() time.Time
}

// NewCustomerUseCase constructs CustomerUseCase.
func NewCustomerUseCase(store repository.Factory) *CustomerUseCase {
	return &CustomerUseCase{customers: store.Customers(), now: time.Now}
}

// Create stores a new customer. Email is normalised to lower case.
func (u *CustomerUseCase) Create(ctx context.Context, in model.CustomerInput) (*model.Customer, error) {
	in, err := normalizeCustomer(in)
	if err != nil {
		return nil, err
	}

	now := u.now()
	customer := &model.Customer{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.customers.Upsert(ctx, customer); err != nil {
		return nil, fmt.Errorf("store customer: %w", err)
	}
	return customer, nil
}

// Update overwrites customer fields, keeping id and creation time.
func (u *CustomerUseCase) Update(ctx context.Context, id string, in model.CustomerInput) (*model.Customer, error) {
	in, err := normalizeCustomer(in)
	if err != nil {
		return nil, err
	}

	customer, err := u.customers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Name = in.Name
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.UpdatedAt = u.now()
	if err := u.customers.Upsert(ctx, customer); err != nil {
		return nil, fmt.Errorf("store customer: %w", err)
	}
	return customer, nil
}

// Delete removes a customer.
func (u *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return u.customers.Delete(ctx, id)
}

// Get returns a customer by id.
func (u *CustomerUseCase) Get(ctx context.Context, id string) (*model.Customer, error) {
	return u.customers.Get(ctx, id)
}

// List returns all customers.
func (u *CustomerUseCase) List(ctx context.Context) ([]model.Customer, error) {
	return u.customers.List(ctx)
}

func normalizeCustomer(in model.CustomerInput) (model.CustomerInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	var problems []string
	if in.Name == "" {
		problems = append(problems, "name is required")
	}
	if in.Email == "" {
		problems = append(problems, "email is required")
	}
	if len(problems) > 0 {
		return in, domainErrors.NewValidationError(problems...)
	}
	return in, nil
}
