package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
)

func setupTestCantiereService() (CantiereService, *mockRepos) {
	repo, mocks := newMockRepos()
	svc := NewCantiereService(repo, zap.NewNop())
	return svc, mocks
}

func TestCantiereService_Create(t *testing.T) {
	svc, _ := setupTestCantiereService()

	result, err := svc.Create(context.Background(), &dto.CreateCantiereRequest{Nome: "Via Roma 12"}, "admin-001")
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if !result.Aperto {
		t.Error("a new cantiere starts open")
	}
	if result.ChiusoIl != "" {
		t.Error("a new cantiere has no closing time")
	}
}

func TestCantiereService_Update_ChiusuraStampsTime(t *testing.T) {
	svc, mocks := setupTestCantiereService()
	seedCantiere(mocks, "cant-001")

	chiuso := false
	result, err := svc.Update(context.Background(), "cant-001", &dto.UpdateCantiereRequest{Aperto: &chiuso}, "admin-001")
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if result.Aperto {
		t.Error("cantiere should be closed")
	}
	if result.ChiusoIl == "" {
		t.Error("closing must stamp the closing time")
	}

	riaperto := true
	result, err = svc.Update(context.Background(), "cant-001", &dto.UpdateCantiereRequest{Aperto: &riaperto}, "admin-001")
	if err != nil {
		t.Fatalf("reopen should succeed: %v", err)
	}
	if !result.Aperto || result.ChiusoIl != "" {
		t.Error("reopening must clear the closing time")
	}
}

func TestCantiereService_List_ExcludesChiusiByDefault(t *testing.T) {
	svc, mocks := setupTestCantiereService()
	seedCantiere(mocks, "cant-001")
	chiuso := seedCantiere(mocks, "cant-002")
	chiuso.Aperto = false

	result, total, err := svc.List(context.Background(), &dto.CantiereListRequest{})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if total != 1 || len(result) != 1 {
		t.Errorf("expected only the open cantiere, got %d", len(result))
	}

	result, _, err = svc.List(context.Background(), &dto.CantiereListRequest{IncludeChiusi: true})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("expected both cantieri, got %d", len(result))
	}
}

func TestCantiereService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestCantiereService()

	if _, err := svc.GetByID(context.Background(), "cant-404"); !errors.Is(err, ErrCantiereNotFound) {
		t.Errorf("expected ErrCantiereNotFound, got %v", err)
	}
}
