package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"
)

func setupTestInterazioneService() (InterazioneService, *mockRepos) {
	repo, mocks := newMockRepos()
	svc := NewInterazioneService(repo, zap.NewNop())
	return svc, mocks
}

func TestInterazioneService_Create_Success(t *testing.T) {
	svc, mocks := setupTestInterazioneService()
	seedWorker(mocks, "user-001")
	seedCantiere(mocks, "cant-001")
	seedAttivita(mocks, "att-001", "user-001", today(), true)

	req := &dto.CreateInterazioneRequest{CantiereID: "cant-001", Ore: 2, Minuti: 45}
	result, err := svc.Create(context.Background(), "att-001", req, "user-001", model.RoleUser)
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if result.TempoTotale.String() != "9900000" {
		t.Errorf("expected 2h45 = 9900000ms, got %s", result.TempoTotale)
	}
	if mocks.attivita.attivita["att-001"].Verificata {
		t.Error("a worker adding an interazione must clear the day's verified flag")
	}
}

func TestInterazioneService_Create_AdminKeepsVerificata(t *testing.T) {
	svc, mocks := setupTestInterazioneService()
	seedAdmin(mocks, "admin-001")
	seedWorker(mocks, "user-001")
	seedCantiere(mocks, "cant-001")
	seedAttivita(mocks, "att-001", "user-001", today(), true)

	req := &dto.CreateInterazioneRequest{CantiereID: "cant-001", Ore: 1, Minuti: 0}
	if _, err := svc.Create(context.Background(), "att-001", req, "admin-001", model.RoleAdmin); err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if !mocks.attivita.attivita["att-001"].Verificata {
		t.Error("an admin edit must not clear the verified flag")
	}
}

func TestInterazioneService_Create_UnknownRefs(t *testing.T) {
	svc, mocks := setupTestInterazioneService()
	seedWorker(mocks, "user-001")
	seedCantiere(mocks, "cant-001")
	seedAttivita(mocks, "att-001", "user-001", today(), false)

	req := &dto.CreateInterazioneRequest{CantiereID: "cant-404", Ore: 1, Minuti: 0}
	if _, err := svc.Create(context.Background(), "att-001", req, "user-001", model.RoleUser); !errors.Is(err, ErrCantiereNotFound) {
		t.Errorf("expected ErrCantiereNotFound, got %v", err)
	}

	missing := "mezzo-404"
	req = &dto.CreateInterazioneRequest{CantiereID: "cant-001", MezzoID: &missing, Ore: 1, Minuti: 0}
	if _, err := svc.Create(context.Background(), "att-001", req, "user-001", model.RoleUser); !errors.Is(err, ErrMezzoNotFound) {
		t.Errorf("expected ErrMezzoNotFound, got %v", err)
	}
}

func TestInterazioneService_Create_OutsideWindow(t *testing.T) {
	svc, mocks := setupTestInterazioneService()
	seedWorker(mocks, "user-001")
	seedCantiere(mocks, "cant-001")
	seedAttivita(mocks, "att-001", "user-001", today().AddDate(0, 0, -15), false)

	req := &dto.CreateInterazioneRequest{CantiereID: "cant-001", Ore: 1, Minuti: 0}
	if _, err := svc.Create(context.Background(), "att-001", req, "user-001", model.RoleUser); !errors.Is(err, ErrEditWindowExpired) {
		t.Errorf("expected ErrEditWindowExpired, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "att-001", req, "admin-001", model.RoleAdmin); err != nil {
		t.Errorf("admin is not window-bound: %v", err)
	}
}

func TestInterazioneService_Update_RecomputesTempo(t *testing.T) {
	svc, mocks := setupTestInterazioneService()
	seedWorker(mocks, "user-001")
	seedCantiere(mocks, "cant-001")
	seedAttivita(mocks, "att-001", "user-001", today(), false)

	oldTempo, _ := durata.FromOreMinuti(2, 0)
	mocks.interazione.records["int-001"] = &model.Interazione{
		InterazioneID: "int-001", AttivitaID: "att-001", UserID: "user-001",
		CantiereID: "cant-001", Ore: 2, Minuti: 0, TempoTotale: oldTempo,
	}

	minuti := 30
	result, err := svc.Update(context.Background(), "int-001", &dto.UpdateInterazioneRequest{Minuti: &minuti}, "user-001", model.RoleUser)
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if result.TempoTotale.String() != "9000000" {
		t.Errorf("expected 2h30 = 9000000ms, got %s", result.TempoTotale)
	}
}

func TestInterazioneService_Delete_OtherWorker(t *testing.T) {
	svc, mocks := setupTestInterazioneService()
	seedWorker(mocks, "user-001")
	seedWorker(mocks, "user-002")
	seedCantiere(mocks, "cant-001")
	seedAttivita(mocks, "att-001", "user-001", today(), false)
	mocks.interazione.records["int-001"] = &model.Interazione{
		InterazioneID: "int-001", AttivitaID: "att-001", UserID: "user-001", CantiereID: "cant-001",
	}

	if err := svc.Delete(context.Background(), "int-001", "user-002", model.RoleUser); !errors.Is(err, ErrInterazioneNotFound) {
		t.Errorf("another worker's record must read as not found, got %v", err)
	}
	if err := svc.Delete(context.Background(), "int-001", "user-001", model.RoleUser); err != nil {
		t.Fatalf("owner delete should succeed: %v", err)
	}
}
