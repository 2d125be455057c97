package handlers

import (
	"log/slog"
	"net/http"

	"github.com/codesnap/conversion-pipeline/pkg/handlers/accounts"
	"github.com/codesnap/conversion-pipeline/pkg/handlers/conversions"
	"github.com/codesnap/conversion-pipeline/pkg/handlers/webhooks"
	custommw "github.com/codesnap/conversion-pipeline/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the HTTP API.
func NewRouter(logger *slog.Logger, conv *conversions.Handler, acct *accounts.Handler, hook *webhooks.Handler) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(custommw.NewStructuredLogger(logger))
	router.Use(custommw.Metrics)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/accounts", func(r chi.Router) {
		r.Post("/", acct.CreateAccount)
		r.Get("/", acct.ListAccounts)
		r.Get("/{accountId}", func(w http.ResponseWriter, req *http.Request) {
			acct.GetAccountById(w, req, chi.URLParam(req, "accountId"))
		})
		r.Get("/{accountId}/balance", func(w http.ResponseWriter, req *http.Request) {
			acct.GetBalanceByAccountId(w, req, chi.URLParam(req, "accountId"))
		})
		r.Get("/{accountId}/ledger", func(w http.ResponseWriter, req *http.Request) {
			acct.ListLedgerByAccountId(w, req, chi.URLParam(req, "accountId"))
		})
		r.Get("/{accountId}/conversions", func(w http.ResponseWriter, req *http.Request) {
			conv.ListConversionsByAccount(w, req, chi.URLParam(req, "accountId"))
		})
	})

	router.Get("/ledger", acct.ListLedger)

	router.Route("/conversions", func(r chi.Router) {
		r.Post("/", conv.SubmitConversion)
		r.Get("/{conversionId}", func(w http.ResponseWriter, req *http.Request) {
			conv.GetConversionById(w, req, chi.URLParam(req, "conversionId"))
		})
		r.Delete("/{conversionId}", func(w http.ResponseWriter, req *http.Request) {
			conv.CancelConversionById(w, req, chi.URLParam(req, "conversionId"))
		})
	})

	router.Route("/webhooks", func(r chi.Router) {
		r.Post("/payments", hook.HandlePaymentEvent)
		r.Get("/parked", hook.ListParkedEvents)
	})

	return router
}
