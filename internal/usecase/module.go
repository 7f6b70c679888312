package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/worker"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewOrderUseCase,
		NewCatalogUseCase,
		NewCustomerUseCase,
	),
	fx.Provide(func(d *worker.EventDispatcher) EventPublisher { return d }),
)
