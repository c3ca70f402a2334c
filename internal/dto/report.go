package dto

import "github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"

// ReportRequest selects the worker and the inclusive date range.
type ReportRequest struct {
	UserID    string `form:"userId"    binding:"required,uuid"`
	StartDate string `form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate"   binding:"required,datetime=2006-01-02"`
}

// ReportRange echoes the requested range.
type ReportRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ReportTotals carries the per-category totals. The JSON field names and the
// decimal-string encoding are part of the wire contract.
type ReportTotals struct {
	Interazioni durata.Millis `json:"interazioniMs"`
	Trasporti   durata.Millis `json:"trasportiMs"`
	Assenze     durata.Millis `json:"assenzeMs"`
	Overall     durata.Millis `json:"overallMs"`
}

// ReportResponse is the worker report. AssenzeByTipo always contains every
// absence type, zero-valued when no record of that type exists in range.
type ReportResponse struct {
	User          UserResponse             `json:"user"`
	Range         ReportRange              `json:"range"`
	Totals        ReportTotals             `json:"totals"`
	AssenzeByTipo map[string]durata.Millis `json:"assenzeByTipoMs"`
}
