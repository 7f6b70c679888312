package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// priceDecimals is the currency scale of catalog prices.
const priceDecimals = 2

// CatalogUseCase maintains the product catalog. Mutations take the same row locks as
// the order engine so they never interleave with a stock movement.
type CatalogUseCase struct {
	tx       repository.Transactor
	products repository.ProductRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(store repository.Factory, logger *slog.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		tx:       store,
		products: store.Products(),
		logger:   logger,
		now:      time.Now,
	}
}

// Create adds a product. Name and price are required, stock defaults to zero.
func (u *CatalogUseCase) Create(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	if problems := validateProduct(in, true); len(problems) > 0 {
		return nil, domainErrors.NewValidationError(problems...)
	}

	now := u.now()
	product := &model.Product{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(*in.Name),
		UnitPrice: in.UnitPrice.Round(priceDecimals),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.StockQuantity != nil {
		product.StockQuantity = *in.StockQuantity
	}

	if err := u.products.Upsert(ctx, product); err != nil {
		return nil, fmt.Errorf("store product: %w", err)
	}
	u.logger.Info("product created", slog.String("product_id", product.ID), slog.Int64("stock", product.StockQuantity))
	return product, nil
}

// Replace overwrites name, price and description. Stock is kept unless supplied.
func (u *CatalogUseCase) Replace(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	if problems := validateProduct(in, true); len(problems) > 0 {
		return nil, domainErrors.NewValidationError(problems...)
	}
	description := ""
	if in.Description != nil {
		description = *in.Description
	}
	in.Description = &description
	return u.mutate(ctx, id, in)
}

// Patch changes only the supplied fields.
func (u *CatalogUseCase) Patch(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	if problems := validateProduct(in, false); len(problems) > 0 {
		return nil, domainErrors.NewValidationError(problems...)
	}
	return u.mutate(ctx, id, in)
}

func (u *CatalogUseCase) mutate(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	var result *model.Product
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		product, err := tx.Products().Get(ctx, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			product.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.UnitPrice != nil {
			product.UnitPrice = in.UnitPrice.Round(priceDecimals)
		}
		if in.StockQuantity != nil {
			product.StockQuantity = *in.StockQuantity
		}
		product.UpdatedAt = u.now()
		if err := tx.Products().Upsert(ctx, product); err != nil {
			return fmt.Errorf("store product: %w", err)
		}
		result = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("product updated", slog.String("product_id", result.ID), slog.Int64("stock", result.StockQuantity))
	return result, nil
}

// Delete removes a product unless an active order still references it.
func (u *CatalogUseCase) Delete(ctx context.Context, id string) error {
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		if _, err := tx.Products().Get(ctx, id); err != nil {
			return err
		}
		inUse, err := tx.Orders().ReferencesProduct(ctx, id)
		if err != nil {
			return fmt.Errorf("check product references: %w", err)
		}
		if inUse {
			return domainErrors.ErrProductInUse
		}
		return tx.Products().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	u.logger.Info("product deleted", slog.String("product_id", id))
	return nil
}

// Get returns a product by id.
func (u *CatalogUseCase) Get(ctx context.Context, id string) (*model.Product, error) {
	return u.products.Get(ctx, id)
}

// List returns the whole catalog.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

func validateProduct(in model.ProductInput, full bool) []string {
	var problems []string
	if (full && in.Name == nil) || (in.Name != nil && strings.TrimSpace(*in.Name) == "") {
		problems = append(problems, "name is required")
	}
	switch {
	case in.UnitPrice == nil:
		if full {
			problems = append(problems, "price must be numeric")
		}
	case in.UnitPrice.IsNegative():
		problems = append(problems, "price must not be negative")
	case !in.UnitPrice.Equal(in.UnitPrice.Round(priceDecimals)):
		problems = append(problems, "price must have at most 2 decimal places")
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		problems = append(problems, "stock must not be negative")
	}
	return problems
}
