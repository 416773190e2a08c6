package routes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	_ "cardpay/docs"
	"cardpay/internal/adapter/http/handlers"
	"cardpay/internal/adapter/persistence/repository"
	"cardpay/internal/config"
	"cardpay/internal/infrastructure/database"
	"cardpay/internal/infrastructure/messaging"
	"cardpay/internal/infrastructure/payments"
	"cardpay/internal/usecase"
	"cardpay/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	serviceName     = "cardpay"
	shutdownTimeout = 10 * time.Second
)

// Run wires every dependency from cfg and serves HTTP until ctx is cancelled
// or the server fails. A gateway that cannot be built stops startup.
func Run(ctx context.Context, cfg config.Config) error {
	paymentHandler, cleanup, err := buildPaymentHandler(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	router := NewRouter(paymentHandler)
	addr := ":" + strconv.Itoa(cfg.Port)
	log.Printf("[http] listening addr=%s", addr)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	return serve(ctx, server)
}

// serve runs server until it fails or ctx is done, then drains in-flight
// requests for at most shutdownTimeout.
func serve(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to startup the application: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[http] shutting down addr=%s", server.Addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to startup the application: %w", err)
	}
	return nil
}

// NewRouter builds the gin engine with middlewares, swagger and the /v1 routes.
func NewRouter(paymentHandler *handlers.PaymentHandler) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler)
	return router
}

func buildPaymentHandler(ctx context.Context, cfg config.Config) (*handlers.PaymentHandler, func(), error) {
	gateway, err := payments.NewGateway(cfg.Payments)
	if err != nil {
		return nil, nil, fmt.Errorf("payment gateway: %w", err)
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return nil, nil, err
	}
	paymentRepo := repository.NewPaymentRecordDynamoRepository(ddb, cfg.DynamoDB.PaymentsTable)

	cleanup := func() {}
	var publisher interfaces.IPaymentEventPublisher
	if cfg.Kafka.Enabled() {
		kp := messaging.NewKafkaPaymentPublisher(cfg.Kafka)
		publisher = kp
		cleanup = func() {
			if err := kp.Close(); err != nil {
				log.Printf("[payment][kafka] close failed err=%v", err)
			}
		}
	} else {
		log.Printf("[payment][kafka] disabled (KAFKA_BROKERS not set)")
	}

	paymentUseCase := usecase.NewPaymentUseCase(gateway, paymentRepo, publisher, cfg.Payments.AcceptedCurrencies)
	return handlers.NewPaymentHandler(paymentUseCase), cleanup, nil
}

func setMiddlewares(router *gin.Engine) {
	router.Use(otelgin.Middleware(serviceName))
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
