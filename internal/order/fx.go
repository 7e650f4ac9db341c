package order

import (
	"github.com/printhauslabs/printhaus/internal/order/repository"
	"github.com/printhauslabs/printhaus/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
