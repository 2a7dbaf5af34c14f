package main

import (
	"fmt"
	"log"
	"net/http"

	"caseFilesCPT/cmd/app"
	"caseFilesCPT/internal/config"
	handlers "caseFilesCPT/internal/handler"
	"caseFilesCPT/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	r := mux.NewRouter()

	// setting up routes
	r.HandleFunc("/", handlers.HomeHandler)
	r.HandleFunc("/health", handlers.HealthHandler)
	r.HandleFunc("/tables", handler.TablesHandler)

	r.HandleFunc("/api/auth/register", handler.Register)
	r.HandleFunc("/api/auth/login", handler.Login)
	r.HandleFunc("/api/auth/refresh-token", handler.RefreshToken)
	r.HandleFunc("/api/auth/check-email", handler.CheckEmail)
	r.HandleFunc("/api/auth/resend-verification", handler.ResendVerification)
	r.HandleFunc("/api/auth/reset-password", handler.ResetPassword)
	r.HandleFunc("/api/auth/update-password", handler.UpdatePassword)

	r.HandleFunc("/api/me", handler.GetCurrentUser)
	r.HandleFunc("/api/user/delete", handler.DeleteUser)
	r.HandleFunc("/api/user/purchases", handler.GetMyPurchases)
	r.HandleFunc("/api/user/preferences", handler.GetPreferences).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/user/preferences", handler.UpdatePreferences).Methods(http.MethodPut)

	r.HandleFunc("/api/cases", handler.ListCases)
	r.HandleFunc("/api/cases/{id}", handler.GetCase)
	r.HandleFunc("/api/cases/{id}/access", handler.CheckAccess)
	r.HandleFunc("/api/cases/{id}/media", handler.GetMedia)

	r.HandleFunc("/api/checkout/order", handler.CreateOrder)
	r.HandleFunc("/api/checkout/capture", handler.Capture)
	r.HandleFunc("/api/payments/verify", handler.VerifyPayment)

	handlerChain := middleware.Chain(
		r,
		middleware.AuthMiddleware(cfg),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
