package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mlitvin/flightbooking/api"
	"github.com/mlitvin/flightbooking/config"
	"github.com/mlitvin/flightbooking/internal/service/booking"
	"github.com/mlitvin/flightbooking/internal/service/flights"
	"github.com/mlitvin/flightbooking/internal/service/payments"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, paymentSvc payments.PaymentUseCase) error {
	router := newRouter(cfg, flightSvc, bookingSvc, paymentSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, paymentSvc payments.PaymentUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	api.NewFlightHandler(flightSvc).Register(router.Group("/flights"))
	api.NewBookingHandler(bookingSvc).Register(router.Group("/bookings"))
	api.NewPaymentHandler(paymentSvc).Register(router.Group("/payments"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile("/docs/flightbooking.swagger.json", filepath.Join(cfg.HTTP.SwaggerDir, "flightbooking.swagger.json"))
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/docs/flightbooking.swagger.json"),
		)))
	}

	return router
}
