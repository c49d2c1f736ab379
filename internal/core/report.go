package core

import (
	"fmt"
	"sort"
	"time"
)

type (
	// Period is a (year, month) pair used for grouping and filtering.
	Period struct {
		Year  int
		Month int // 1-12
	}

	// CategoryTotals holds lifetime commission sums per category plus
	// the grand total across all four.
	CategoryTotals struct {
		Sales         Money
		Collections   Money
		Consultations Money
		Procedures    Money
		Total         Money
	}

	// MonthTotal is the combined commission of all four categories for
	// one period, labelled with a localized month name.
	MonthTotal struct {
		Period Period
		Label  string // e.g. "Março/2024"
		Total  Money
	}

	// PeriodDetail lists every record of the selected period per
	// category, with the combined commission for that period.
	PeriodDetail struct {
		Period        Period
		Sales         []Sale
		Collections   []Collection
		Consultations []Consultation
		Procedures    []Procedure
		Total         Money
	}

	// Report is the full aggregation over one user's records.
	Report struct {
		Lifetime CategoryTotals
		History  []MonthTotal
		Detail   PeriodDetail
	}
)

var monthNames = map[time.Month]string{
	time.January:   "Janeiro",
	time.February:  "Fevereiro",
	time.March:     "Março",
	time.April:     "Abril",
	time.May:       "Maio",
	time.June:      "Junho",
	time.July:      "Julho",
	time.August:    "Agosto",
	time.September: "Setembro",
	time.October:   "Outubro",
	time.November:  "Novembro",
	time.December:  "Dezembro",
}

// Label renders the period as "MonthName/Year".
func (p Period) Label() string {
	return fmt.Sprintf("%s/%d", monthNames[time.Month(p.Month)], p.Year)
}

func (p Period) key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(d Date) bool {
	return d.Year() == p.Year && d.Month() == p.Month
}

// BuildReport aggregates one user's records into lifetime totals, a
// most-recent-first monthly history and the detail for the given period.
// A period with no records yields empty lists and a zero total.
func BuildReport(sales []Sale, collections []Collection, consultations []Consultation, procedures []Procedure, filter Period) Report {
	var r Report
	history := make(map[Period]Money)

	add := func(d Date, c Money) {
		history[Period{Year: d.Year(), Month: d.Month()}] = history[Period{Year: d.Year(), Month: d.Month()}].Add(c)
	}

	for _, s := range sales {
		r.Lifetime.Sales = r.Lifetime.Sales.Add(s.Commission)
		add(s.SaleDate, s.Commission)
		if filter.Contains(s.SaleDate) {
			r.Detail.Sales = append(r.Detail.Sales, s)
		}
	}
	for _, c := range collections {
		r.Lifetime.Collections = r.Lifetime.Collections.Add(c.Commission)
		add(c.NegotiationDate, c.Commission)
		if filter.Contains(c.NegotiationDate) {
			r.Detail.Collections = append(r.Detail.Collections, c)
		}
	}
	for _, c := range consultations {
		r.Lifetime.Consultations = r.Lifetime.Consultations.Add(c.Commission)
		add(c.ConsultationDate, c.Commission)
		if filter.Contains(c.ConsultationDate) {
			r.Detail.Consultations = append(r.Detail.Consultations, c)
		}
	}
	for _, p := range procedures {
		r.Lifetime.Procedures = r.Lifetime.Procedures.Add(p.Commission)
		add(p.ProcedureDate, p.Commission)
		if filter.Contains(p.ProcedureDate) {
			r.Detail.Procedures = append(r.Detail.Procedures, p)
		}
	}

	r.Lifetime.Total = r.Lifetime.Sales.
		Add(r.Lifetime.Collections).
		Add(r.Lifetime.Consultations).
		Add(r.Lifetime.Procedures)

	for p, total := range history {
		r.History = append(r.History, MonthTotal{Period: p, Label: p.Label(), Total: total})
	}
	sort.Slice(r.History, func(i, j int) bool {
		return r.History[i].Period.key() > r.History[j].Period.key()
	})

	r.Detail.Period = filter
	r.Detail.Total = history[filter]
	return r
}
