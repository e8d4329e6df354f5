package wire

import (
	"clubops/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// Club-scoped routes. They are mounted under /api, behind AuthSession and
// RequireClub.

func wireDancer(r chi.Router, h *adaptor.DancerHandler) {
	r.Route("/dancers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/alerts", h.Alerts)
		r.Post("/{id}/check-in", h.CheckIn)
		r.Put("/{id}/check-out", h.CheckOut)
	})
}

func wireQueue(r chi.Router, h *adaptor.QueueHandler) {
	r.Route("/queue/{stageId}", func(r chi.Router) {
		r.Get("/", h.Read)
		r.Post("/add", h.Add)
		r.Put("/reorder", h.Reorder)
		r.Put("/entries/{entryId}/cancel", h.Cancel)
	})
}

func wireVip(r chi.Router, h *adaptor.VipHandler) {
	r.Route("/vip-rooms", func(r chi.Router) {
		r.Get("/", h.ListRooms)
		r.Get("/bookings/{bookingId}/receipt", h.Receipt)
		r.Post("/{id}/book", h.Book)
		r.Put("/{id}/checkout", h.Checkout)
	})
}

func wireFinancial(r chi.Router, h *adaptor.FinancialHandler) {
	r.Route("/financial", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)
		r.Post("/bar-fee", h.BarFee)
	})
}
