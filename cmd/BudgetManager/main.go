package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	database "github.com/sebuszqo/BudgetManager/db"
	"github.com/sebuszqo/BudgetManager/internal/budget/application"
	"github.com/sebuszqo/BudgetManager/internal/budget/infrastructure"
	"github.com/sebuszqo/BudgetManager/internal/budget/interfaces"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	dbService          *database.DBService
	uploadHandler      *interfaces.UploadHandler
	transactionHandler *interfaces.TransactionHandler
	ruleHandler        *interfaces.RuleHandler
	statsHandler       *interfaces.StatsHandler
}

func NewServer(
	dbService *database.DBService,
	uploadHandler *interfaces.UploadHandler,
	transactionHandler *interfaces.TransactionHandler,
	ruleHandler *interfaces.RuleHandler,
	statsHandler *interfaces.StatsHandler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		dbService:          dbService,
		uploadHandler:      uploadHandler,
		transactionHandler: transactionHandler,
		ruleHandler:        ruleHandler,
		statsHandler:       statsHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	apiRoutes := http.NewServeMux()
	apiRoutes.Handle("POST /api/upload-csv", http.HandlerFunc(s.uploadHandler.HandleUploadCSV))

	apiRoutes.Handle("GET /api/transactions", http.HandlerFunc(s.transactionHandler.GetTransactions))
	apiRoutes.Handle("PATCH /api/transactions/{transactionID}/category", http.HandlerFunc(s.transactionHandler.HandleSetCategory))
	apiRoutes.Handle("DELETE /api/clear-database", http.HandlerFunc(s.transactionHandler.HandleClearDatabase))

	apiRoutes.Handle("GET /api/category-rules", http.HandlerFunc(s.ruleHandler.GetRules))
	apiRoutes.Handle("POST /api/category-rules", http.HandlerFunc(s.ruleHandler.CreateRule))
	apiRoutes.Handle("GET /api/category-rules/export", http.HandlerFunc(s.ruleHandler.HandleExportRules))
	apiRoutes.Handle("POST /api/category-rules/import", http.HandlerFunc(s.ruleHandler.HandleImportRules))
	apiRoutes.Handle("PUT /api/category-rules/{ruleID}", http.HandlerFunc(s.ruleHandler.UpdateRule))
	apiRoutes.Handle("DELETE /api/category-rules/{ruleID}", http.HandlerFunc(s.ruleHandler.DeleteRule))
	apiRoutes.Handle("POST /api/recategorize-all", http.HandlerFunc(s.ruleHandler.HandleRecategorizeAll))

	apiRoutes.Handle("GET /api/stats", http.HandlerFunc(s.statsHandler.GetStats))
	apiRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", apiRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING provided")
	}
	return nil
}

func maxUploadBytesFromEnv() int64 {
	raw := os.Getenv("MAX_UPLOAD_BYTES")
	if raw == "" {
		return application.DefaultMaxUploadBytes
	}
	maxBytes, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || maxBytes <= 0 {
		log.Printf("Ignoring invalid MAX_UPLOAD_BYTES %q", raw)
		return application.DefaultMaxUploadBytes
	}
	return maxBytes
}

// StartRecategorizeScheduler runs a periodic re-categorization pass when
// RECATEGORIZE_SCHEDULE holds a cron expression.
func StartRecategorizeScheduler(ruleService *application.CategoryRuleService, schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		updated, err := ruleService.RecategorizeAll()
		if err != nil {
			log.Printf("Error during scheduled re-categorization: %v", err)
		} else {
			log.Printf("Scheduled re-categorization updated %d transactions", updated)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := infrastructure.EnsureSchema(dbService.DB); err != nil {
		log.Fatalf("Could not initialize database schema: %v", err)
	}

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	ruleRepo := infrastructure.NewRuleRepository(dbService.DB)

	ruleService := application.NewCategoryRuleService(ruleRepo, transactionRepo)
	transactionService := application.NewTransactionService(transactionRepo)
	ingestService := application.NewIngestService(transactionRepo, ruleRepo, maxUploadBytesFromEnv())
	statsService := application.NewStatsService(transactionRepo)

	seeded, err := ruleService.SeedDefaultRules()
	if err != nil {
		log.Fatalf("Could not seed default category rules: %v", err)
	}
	if seeded > 0 {
		log.Printf("Seeded %d default category rules", seeded)
	}

	uploadHandler := interfaces.NewUploadHandler(ingestService, respondJSON, respondError)
	transactionHandler := interfaces.NewTransactionHandler(transactionService, respondJSON, respondError)
	ruleHandler := interfaces.NewRuleHandler(ruleService, respondJSON, respondError)
	statsHandler := interfaces.NewStatsHandler(statsService, respondJSON, respondError)

	server := NewServer(dbService, uploadHandler, transactionHandler, ruleHandler, statsHandler)
	server.RegisterRoutes()

	if schedule := os.Getenv("RECATEGORIZE_SCHEDULE"); schedule != "" {
		if err := StartRecategorizeScheduler(ruleService, schedule); err != nil {
			log.Fatalf("Scheduler didn't start, stopping the app ...")
		}
		log.Printf("Scheduled re-categorization with %q", schedule)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	handler := loggingMiddleware(server.router)
	log.Printf("Server starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
