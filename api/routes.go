package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-sync/internal/handlers/v1/budget"
	"github.com/carson-networks/expense-sync/internal/handlers/v1/expenses"
	"github.com/carson-networks/expense-sync/internal/handlers/v1/status"
	"github.com/carson-networks/expense-sync/internal/handlers/v1/summary"
	"github.com/carson-networks/expense-sync/internal/handlers/v1/synchronize"
	"github.com/carson-networks/expense-sync/internal/logging"
	"github.com/carson-networks/expense-sync/internal/service"
	"github.com/carson-networks/expense-sync/internal/session"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Session session.Provider
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	humaAPI := humago.New(mux, huma.DefaultConfig("Expense Sync API", "1.0.0"))
	humaAPI.UseMiddleware(logging.Middleware(r.Logger))

	expenses.NewCreateExpenseHandler(r.Service.Expense, r.Session).Register(humaAPI)
	expenses.NewListExpensesHandler(r.Service.Expense).Register(humaAPI)
	expenses.NewUpdateExpenseHandler(r.Service.Expense, r.Session).Register(humaAPI)
	expenses.NewDeleteExpenseHandler(r.Service.Expense, r.Session).Register(humaAPI)
	budget.NewGetBudgetHandler(r.Service.Budget, r.Session).Register(humaAPI)
	budget.NewSetBudgetHandler(r.Service.Budget, r.Session).Register(humaAPI)
	synchronize.NewHandler(r.Service.Expense, r.Service.Budget, r.Session).Register(humaAPI)
	summary.NewMonthlySummaryHandler(r.Service.Summary, r.Session).Register(humaAPI)
	summary.NewBreakdownHandler(r.Service.Summary).Register(humaAPI)

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
