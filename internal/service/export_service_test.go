package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
)

func setupTestExportService() (ExportService, *mockRepos) {
	repo, mocks := newMockRepos()
	report := NewReportService(repo, zap.NewNop())
	svc := NewExportService(report, zap.NewNop())
	return svc, mocks
}

func TestExportService_ExportReportXlsx(t *testing.T) {
	svc, mocks := setupTestExportService()
	seedWorker(mocks, "user-001")
	seedAttivita(mocks, "att-001", "user-001", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), true)
	mocks.interazione.records["int-001"] = &model.Interazione{
		InterazioneID: "int-001", AttivitaID: "att-001", UserID: "user-001",
		CantiereID: "cant-001", TempoTotale: mustMillis(t, 8, 0),
	}

	req := &dto.ReportRequest{UserID: "user-001", StartDate: "2026-03-01", EndDate: "2026-03-31"}
	buf, filename, err := svc.ExportReportXlsx(context.Background(), req)
	if err != nil {
		t.Fatalf("ExportReportXlsx should succeed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected a non-empty workbook")
	}
	if filename != "rapporto_2026-03-01_2026-03-31.xlsx" {
		t.Errorf("unexpected filename %q", filename)
	}

	// xlsx is a zip container
	head := buf.Bytes()[:2]
	if head[0] != 'P' || head[1] != 'K' {
		t.Error("workbook should be a zip archive")
	}
}

func TestExportService_ExportReportXlsx_PropagatesReportErrors(t *testing.T) {
	svc, _ := setupTestExportService()

	req := &dto.ReportRequest{UserID: "user-404", StartDate: "2026-03-01", EndDate: "2026-03-31"}
	if _, _, err := svc.ExportReportXlsx(context.Background(), req); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
