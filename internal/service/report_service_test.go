package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"
)

func setupTestReportService() (ReportService, *mockRepos) {
	repo, mocks := newMockRepos()
	svc := NewReportService(repo, zap.NewNop())
	return svc, mocks
}

func mustMillis(t *testing.T, ore, minuti int) durata.Millis {
	t.Helper()
	m, err := durata.FromOreMinuti(ore, minuti)
	if err != nil {
		t.Fatalf("FromOreMinuti(%d, %d): %v", ore, minuti, err)
	}
	return m
}

func TestReportService_GetReport_Totals(t *testing.T) {
	svc, mocks := setupTestReportService()
	seedWorker(mocks, "user-001")
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	seedAttivita(mocks, "att-001", "user-001", day, true)

	// two interazioni (2h00 + 0h45) and one full day of ferie (8h00)
	mocks.interazione.records["int-001"] = &model.Interazione{
		InterazioneID: "int-001", AttivitaID: "att-001", UserID: "user-001",
		CantiereID: "cant-001", TempoTotale: mustMillis(t, 2, 0),
	}
	mocks.interazione.records["int-002"] = &model.Interazione{
		InterazioneID: "int-002", AttivitaID: "att-001", UserID: "user-001",
		CantiereID: "cant-001", TempoTotale: mustMillis(t, 0, 45),
	}
	mocks.assenza.records["ass-001"] = &model.Assenza{
		AssenzaID: "ass-001", AttivitaID: "att-001", UserID: "user-001",
		Tipo: model.TipoFerie, TempoTotale: mustMillis(t, 8, 0),
	}

	req := &dto.ReportRequest{UserID: "user-001", StartDate: "2026-03-01", EndDate: "2026-03-31"}
	report, err := svc.GetReport(context.Background(), req)
	if err != nil {
		t.Fatalf("GetReport should succeed: %v", err)
	}

	if got := report.Totals.Interazioni.String(); got != "9900000" {
		t.Errorf("interazioni total: expected 9900000, got %s", got)
	}
	if got := report.Totals.Trasporti.String(); got != "0" {
		t.Errorf("trasporti total: expected 0, got %s", got)
	}
	if got := report.Totals.Assenze.String(); got != "28800000" {
		t.Errorf("assenze total: expected 28800000, got %s", got)
	}
	if got := report.Totals.Overall.String(); got != "38700000" {
		t.Errorf("overall total: expected 38700000, got %s", got)
	}
	if report.User.ID != "user-001" {
		t.Errorf("expected report user user-001, got %s", report.User.ID)
	}
}

func TestReportService_GetReport_EndDateInclusive(t *testing.T) {
	svc, mocks := setupTestReportService()
	seedWorker(mocks, "user-001")
	seedAttivita(mocks, "att-001", "user-001", time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), false)
	mocks.interazione.records["int-001"] = &model.Interazione{
		InterazioneID: "int-001", AttivitaID: "att-001", UserID: "user-001",
		CantiereID: "cant-001", TempoTotale: mustMillis(t, 1, 0),
	}

	req := &dto.ReportRequest{UserID: "user-001", StartDate: "2026-03-01", EndDate: "2026-03-31"}
	report, err := svc.GetReport(context.Background(), req)
	if err != nil {
		t.Fatalf("GetReport should succeed: %v", err)
	}
	if got := report.Totals.Interazioni.String(); got != "3600000" {
		t.Errorf("work on the end date itself must count, expected 3600000, got %s", got)
	}
}

func TestReportService_GetReport_InvalidRange(t *testing.T) {
	svc, mocks := setupTestReportService()
	seedWorker(mocks, "user-001")

	req := &dto.ReportRequest{UserID: "user-001", StartDate: "2026-04-01", EndDate: "2026-03-01"}
	if _, err := svc.GetReport(context.Background(), req); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestReportService_GetReport_UnknownUser(t *testing.T) {
	svc, _ := setupTestReportService()

	req := &dto.ReportRequest{UserID: "user-404", StartDate: "2026-03-01", EndDate: "2026-03-31"}
	if _, err := svc.GetReport(context.Background(), req); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestReportService_GetReport_AdminTarget(t *testing.T) {
	svc, mocks := setupTestReportService()
	seedAdmin(mocks, "admin-001")

	req := &dto.ReportRequest{UserID: "admin-001", StartDate: "2026-03-01", EndDate: "2026-03-31"}
	if _, err := svc.GetReport(context.Background(), req); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("admin target should read as missing, got %v", err)
	}
}

// Every absence type must appear in the breakdown, zero-valued when unused.
func TestAggregateAssenzeByTipo_AllKeysPresent(t *testing.T) {
	records := []model.Assenza{
		{Tipo: model.TipoFerie, TempoTotale: 28800000},
		{Tipo: model.TipoFerie, TempoTotale: 14400000},
		{Tipo: model.TipoMutua, TempoTotale: 28800000},
	}

	byTipo := aggregateAssenzeByTipo(records)
	if len(byTipo) != len(model.TipiAssenza) {
		t.Fatalf("expected %d keys, got %d", len(model.TipiAssenza), len(byTipo))
	}
	for _, tipo := range model.TipiAssenza {
		if _, ok := byTipo[tipo]; !ok {
			t.Errorf("missing key %s", tipo)
		}
	}
	if byTipo[model.TipoFerie].String() != "43200000" {
		t.Errorf("FERIE: expected 43200000, got %s", byTipo[model.TipoFerie])
	}
	if byTipo[model.TipoMutua].String() != "28800000" {
		t.Errorf("MUTUA: expected 28800000, got %s", byTipo[model.TipoMutua])
	}
	if byTipo[model.TipoPermesso] != 0 {
		t.Errorf("PERMESSO should be zero, got %s", byTipo[model.TipoPermesso])
	}
	if byTipo[model.TipoPaternita] != 0 || byTipo[model.TipoCassaIntegrazione] != 0 {
		t.Error("unused types should be zero")
	}
}
