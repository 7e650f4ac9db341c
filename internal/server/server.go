// Package server exposes the pricing engine and order flow over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printhauslabs/printhaus/internal/config"
	orderdomain "github.com/printhauslabs/printhaus/internal/order/domain"
	pricingdomain "github.com/printhauslabs/printhaus/internal/pricing/domain"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(Run),
)

type Params struct {
	fx.In

	Config     *config.Config
	Log        *zap.Logger
	DB         *gorm.DB
	RuleSvc    ruledomain.Service
	PricingSvc pricingdomain.Service
	OrderSvc   orderdomain.Service
}

type Server struct {
	log        *zap.Logger
	db         *gorm.DB
	engine     *gin.Engine
	httpServer *http.Server

	ruleSvc    ruledomain.Service
	pricingSvc pricingdomain.Service
	orderSvc   orderdomain.Service
}

func New(p Params) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		log:        p.Log.Named("server"),
		db:         p.DB,
		ruleSvc:    p.RuleSvc,
		pricingSvc: p.PricingSvc,
		orderSvc:   p.OrderSvc,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())

	s.registerRoutes(engine)
	s.engine = engine
	s.httpServer = &http.Server{
		Addr:              p.Config.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Health)
	engine.GET("/readyz", s.Readiness)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/v1")
	{
		v1.POST("/quotes", s.CreateQuote)

		v1.GET("/pricing-rules", s.ListPricingRules)
		v1.POST("/pricing-rules", s.CreatePricingRule)
		v1.GET("/pricing-rules/:id", s.GetPricingRule)
		v1.PATCH("/pricing-rules/:id", s.UpdatePricingRule)
		v1.DELETE("/pricing-rules/:id", s.DeactivatePricingRule)
		v1.POST("/pricing-rules/bulk-reprice", s.BulkReprice)

		v1.POST("/orders", s.CreateOrderLine)
		v1.GET("/orders", s.ListOrderLines)
		v1.GET("/orders/:id", s.GetOrderLine)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// Run starts the HTTP listener under the fx lifecycle.
func Run(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", s.httpServer.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.httpServer.Shutdown(ctx)
		},
	})
}
