package http

import (
	"errors"
	"net/http"
	"strings"

	"comissoes/internal/amqp"
	"comissoes/internal/core"
	applog "comissoes/internal/log"
)

type salesPage struct {
	Title    string
	UserName string
	Flash    string
	Sales    []core.Sale
}

type saleEditPage struct {
	Title    string
	UserName string
	Flash    string
	Sale     core.Sale
}

// saleFromForm builds a sale from the submitted fields and computes its
// commission. The commission never comes from the client.
func saleFromForm(r *http.Request, ownerID int64) core.Sale {
	cents, err := core.ParseDecimalToCents(r.FormValue("valor"))
	if err != nil {
		cents = 0
	}
	total := core.Money{Cents: cents}
	saleType := strings.TrimSpace(r.FormValue("tipo"))
	return core.Sale{
		OwnerID:    ownerID,
		ClientName: strings.TrimSpace(r.FormValue("cliente")),
		SaleDate:   parseDateField(r.FormValue("data")),
		SaleType:   saleType,
		Total:      total,
		Commission: core.SaleCommission(saleType, total),
	}
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	switch r.Method {
	case http.MethodGet:
		sales, err := s.store.ListSalesByOwner(r.Context(), user.ID)
		if err != nil {
			applog.FromContext(r.Context()).Error("Failed to list sales", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.render(w, r, "vendas.html", salesPage{
			Title:    "Vendas",
			UserName: user.Name,
			Flash:    popFlash(w, r),
			Sales:    sales,
		})
	case http.MethodPost:
		sale := saleFromForm(r, user.ID)
		if err := sale.Validate(); err != nil {
			setFlash(w, "Dados inválidos: "+err.Error())
			http.Redirect(w, r, "/vendas", http.StatusSeeOther)
			return
		}
		if err := s.store.CreateSale(r.Context(), &sale); err != nil {
			applog.FromContext(r.Context()).Error("Failed to create sale", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.publishEvent(r.Context(), "vendas", amqp.ActionCreated, sale.ID, user.ID, sale.Commission.Cents)
		setFlash(w, "Venda registrada.")
		http.Redirect(w, r, "/vendas", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSaleEdit(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	sale, err := s.store.GetSale(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.FromContext(r.Context()).Error("Failed to load sale", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	if sale.OwnerID != user.ID {
		setFlash(w, "Acesso negado.")
		http.Redirect(w, r, "/vendas", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "venda_edit.html", saleEditPage{
			Title:    "Editar venda",
			UserName: user.Name,
			Flash:    popFlash(w, r),
			Sale:     *sale,
		})
	case http.MethodPost:
		updated := saleFromForm(r, user.ID)
		updated.ID = sale.ID
		if err := updated.Validate(); err != nil {
			setFlash(w, "Dados inválidos: "+err.Error())
			http.Redirect(w, r, "/vendas", http.StatusSeeOther)
			return
		}
		if err := s.store.UpdateSale(r.Context(), &updated); err != nil {
			applog.FromContext(r.Context()).Error("Failed to update sale", "error", err)
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		s.publishEvent(r.Context(), "vendas", amqp.ActionUpdated, updated.ID, user.ID, updated.Commission.Cents)
		setFlash(w, "Venda atualizada.")
		http.Redirect(w, r, "/vendas", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSaleDelete(w http.ResponseWriter, r *http.Request) {
	// Delete is reachable from both a plain link and a form.
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	user := userFrom(r)

	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	sale, err := s.store.GetSale(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.FromContext(r.Context()).Error("Failed to load sale", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	if sale.OwnerID != user.ID {
		setFlash(w, "Acesso negado.")
		http.Redirect(w, r, "/vendas", http.StatusSeeOther)
		return
	}

	if err := s.store.DeleteSale(r.Context(), id); err != nil {
		applog.FromContext(r.Context()).Error("Failed to delete sale", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}
	s.publishEvent(r.Context(), "vendas", amqp.ActionDeleted, id, user.ID, sale.Commission.Cents)
	setFlash(w, "Venda removida.")
	http.Redirect(w, r, "/vendas", http.StatusSeeOther)
}
