package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/billsplit/docs"
	billhandlers "github.com/GlebRadaev/billsplit/internal/handlers/bill"
	"github.com/GlebRadaev/billsplit/internal/service"
	"github.com/GlebRadaev/billsplit/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type BillHandler interface {
	Current(w http.ResponseWriter, r *http.Request)
	CloseCurrent(w http.ResponseWriter, r *http.Request)
	GetBill(w http.ResponseWriter, r *http.Request)
	CreateBill(w http.ResponseWriter, r *http.Request)
	Contribute(w http.ResponseWriter, r *http.Request)
	Refund(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Share(w http.ResponseWriter, r *http.Request)
	ShareQR(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	BillHandler BillHandler

	viewer func() string
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		BillHandler: billhandlers.New(s.BillService, s.ContributeService, s.RefundService, s.Watcher),
		viewer:      s.BillService.Viewer,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.ViewerMiddleware(h.viewer))

		r.Route("/bills", func(r chi.Router) {
			r.Post("/", h.BillHandler.CreateBill)
			r.Get("/current", h.BillHandler.Current)
			r.Delete("/current", h.BillHandler.CloseCurrent)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.BillHandler.GetBill)
				r.Post("/contribute", h.BillHandler.Contribute)
				r.Post("/refund", h.BillHandler.Refund)
				r.Post("/cancel", h.BillHandler.Cancel)
				r.Get("/share", h.BillHandler.Share)
				r.Get("/share.png", h.BillHandler.ShareQR)
			})
		})
		r.Get("/history", h.BillHandler.History)
		r.Get("/balance", h.BillHandler.Balance)
	})

	return r
}
