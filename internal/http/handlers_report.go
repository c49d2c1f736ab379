package http

import (
	"context"
	"fmt"
	"net/http"

	"comissoes/internal/core"
	applog "comissoes/internal/log"
)

// loadReport pulls the caller's four record lists and aggregates them
// for the given period.
func (s *Server) loadReport(ctx context.Context, ownerID int64, period core.Period) (core.Report, error) {
	sales, err := s.store.ListSalesByOwner(ctx, ownerID)
	if err != nil {
		return core.Report{}, fmt.Errorf("list sales: %w", err)
	}
	collections, err := s.store.ListCollectionsByOwner(ctx, ownerID)
	if err != nil {
		return core.Report{}, fmt.Errorf("list collections: %w", err)
	}
	consultations, err := s.store.ListConsultationsByOwner(ctx, ownerID)
	if err != nil {
		return core.Report{}, fmt.Errorf("list consultations: %w", err)
	}
	procedures, err := s.store.ListProceduresByOwner(ctx, ownerID)
	if err != nil {
		return core.Report{}, fmt.Errorf("list procedures: %w", err)
	}
	return core.BuildReport(sales, collections, consultations, procedures, period), nil
}

type homePage struct {
	Title    string
	UserName string
	Flash    string
	Period   core.Period
	Total    core.Money
}

// handleHome shows the signed-in user's combined commission for the
// current month.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	user := userFrom(r)
	period := parsePeriod(r)

	report, err := s.loadReport(r.Context(), user.ID, period)
	if err != nil {
		applog.FromContext(r.Context()).Error("Failed to build home summary", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "home.html", homePage{
		Title:    "Início",
		UserName: user.Name,
		Flash:    popFlash(w, r),
		Period:   period,
		Total:    report.Detail.Total,
	})
}

type reportPage struct {
	Title    string
	UserName string
	Flash    string
	Report   core.Report
}

// handleReport renders the full report: lifetime per-category totals,
// monthly history and the selected period's record detail.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	period := parsePeriod(r)

	report, err := s.loadReport(r.Context(), user.ID, period)
	if err != nil {
		applog.FromContext(r.Context()).Error("Failed to build report", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "relatorios.html", reportPage{
		Title:    "Relatório geral",
		UserName: user.Name,
		Flash:    popFlash(w, r),
		Report:   report,
	})
}
