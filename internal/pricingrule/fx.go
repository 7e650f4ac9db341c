package pricingrule

import (
	"github.com/printhauslabs/printhaus/internal/pricingrule/repository"
	"github.com/printhauslabs/printhaus/internal/pricingrule/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricingrule.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
