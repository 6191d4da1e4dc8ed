package api

import (
	"net/http"

	_ "github.com/AlexZinkM/ton-wallet/docs"
	"github.com/AlexZinkM/ton-wallet/internal/handler"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(tonHandler *handler.TonHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	mux.Handle("/metrics", promhttp.Handler())

	// TON endpoints
	mux.HandleFunc("/ton/generate", tonHandler.Generate)
	mux.HandleFunc("/ton/balance", tonHandler.GetBalance)
	mux.HandleFunc("/ton/pay", tonHandler.Pay)

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}
