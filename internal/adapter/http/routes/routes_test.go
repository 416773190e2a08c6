package routes

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cardpay/internal/adapter/http/handlers"
	"cardpay/internal/adapter/http/handlers/mocks"
	"cardpay/internal/config"
	"cardpay/internal/domain/entities"
	"cardpay/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	router := NewRouter(handlers.NewPaymentHandler(uc))

	uc.EXPECT().FormOptions(gomock.Any()).Return(usecase.FormOptions{})
	uc.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.PaymentRecord{ID: "pay-1"}, nil)
	uc.EXPECT().ListByProcessor(gomock.Any(), "PayPal").Return(nil, nil)

	for _, path := range []string{
		"/v1/ping",
		"/v1/payments/options",
		"/v1/payments/pay-1",
		"/v1/payments?processor=PayPal",
	} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
		})
	}
}

func TestNewRouter_Swagger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(handlers.NewPaymentHandler(nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestNewRouter_TracesRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(previous)

	var serverLog bytes.Buffer
	srv := httptest.NewUnstartedServer(NewRouter(handlers.NewPaymentHandler(nil)))
	srv.Config.ErrorLog = log.New(&serverLog, "", 0)
	srv.Start()

	resp, err := http.Get(srv.URL + "/v1/ping")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	srv.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if strings.Contains(serverLog.String(), "superfluous") {
		t.Fatalf("unexpected server log: %s", serverLog.String())
	}
	spans := recorder.Ended()
	if len(spans) != 1 || !strings.Contains(spans[0].Name(), "/v1/ping") {
		t.Fatalf("expected one /v1/ping span, got %d", len(spans))
	}
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- serve(ctx, server) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_ListenFailure(t *testing.T) {
	server := &http.Server{Addr: "127.0.0.1:-1", Handler: http.NotFoundHandler()}
	if err := serve(context.Background(), server); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Port: 0,
		Payments: config.PaymentsConfig{
			Gateway:     config.GatewayMercadoPago,
			MercadoPago: config.MercadoPagoConfig{Mock: true},
		},
		DynamoDB: config.DynamoDBConfig{
			Region:          "us-east-1",
			AccessKeyID:     "local",
			SecretAccessKey: "local",
			Endpoint:        "http://127.0.0.1:8000",
		},
	}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg) }()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
