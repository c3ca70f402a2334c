//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/repository"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=lunardi password=lunardi_password dbname=lunardi_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to the test database: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.Cantiere{},
		&model.Mezzo{},
		&model.Attrezzatura{},
		&model.Attivita{},
		&model.Interazione{},
		&model.Trasporto{},
		&model.Assenza{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func setupTestData(t *testing.T) (worker *model.User, cantiere *model.Cantiere, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	worker = &model.User{
		Nome:         "Test Operaio",
		Email:        fmt.Sprintf("operaio-%d@lunardi.it", time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         model.RoleUser,
	}
	if err := testDB.WithContext(ctx).Create(worker).Error; err != nil {
		t.Fatalf("creating worker: %v", err)
	}

	cantiere = &model.Cantiere{
		Nome:   fmt.Sprintf("Cantiere-%d", time.Now().UnixNano()),
		Aperto: true,
	}
	if err := testDB.WithContext(ctx).Create(cantiere).Error; err != nil {
		t.Fatalf("creating cantiere: %v", err)
	}

	cleanup = func() {
		testDB.Where("user_id = ?", worker.UserID).Delete(&model.Attivita{})
		testDB.Delete(cantiere)
		testDB.Delete(worker)
	}
	return worker, cantiere, cleanup
}

func TestRepository_Transaction_Commit(t *testing.T) {
	worker, cantiere, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	var attivitaID string
	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		attivita := &model.Attivita{Data: day, UserID: worker.UserID}
		if err := txRepo.Attivita.Create(ctx, attivita); err != nil {
			return err
		}
		attivitaID = attivita.AttivitaID

		return txRepo.Interazione.Create(ctx, &model.Interazione{
			AttivitaID:  attivita.AttivitaID,
			UserID:      worker.UserID,
			CantiereID:  cantiere.CantiereID,
			Ore:         2,
			TempoTotale: 7200000,
		})
	})
	if err != nil {
		t.Fatalf("transaction should commit: %v", err)
	}

	attivita, err := repo.Attivita.GetByID(ctx, attivitaID)
	if err != nil {
		t.Fatalf("committed work day must be readable: %v", err)
	}
	if len(attivita.Interazioni) != 1 {
		t.Errorf("expected 1 interazione, got %d", len(attivita.Interazioni))
	}
}

func TestRepository_Transaction_RollbackOnError(t *testing.T) {
	worker, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	boom := errors.New("boom")
	var attivitaID string
	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		attivita := &model.Attivita{Data: day, UserID: worker.UserID}
		if err := txRepo.Attivita.Create(ctx, attivita); err != nil {
			return err
		}
		attivitaID = attivita.AttivitaID
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the inner error back, got %v", err)
	}

	if _, err := repo.Attivita.GetByID(ctx, attivitaID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("rolled-back work day must not exist, got %v", err)
	}
}

func TestRepository_BeginTx_ManualRollback(t *testing.T) {
	worker, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	txRepo := repo.WithTx(tx)

	attivita := &model.Attivita{
		Data:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		UserID: worker.UserID,
	}
	if err := txRepo.Attivita.Create(ctx, attivita); err != nil {
		tx.Rollback()
		t.Fatalf("create inside tx: %v", err)
	}
	tx.Rollback()

	if _, err := repo.Attivita.GetByID(ctx, attivita.AttivitaID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("rolled-back work day must not exist, got %v", err)
	}
}

func TestAssegnazioneRepo_ReplaceAndProbe(t *testing.T) {
	worker, cantiere, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	assigned, err := repo.Assegnazione.HasCantiere(ctx, worker.UserID, cantiere.CantiereID)
	if err != nil {
		t.Fatalf("HasCantiere: %v", err)
	}
	if assigned {
		t.Fatal("fresh worker must not be assigned")
	}

	if err := repo.Assegnazione.ReplaceCantieri(ctx, worker.UserID, []string{cantiere.CantiereID}); err != nil {
		t.Fatalf("ReplaceCantieri: %v", err)
	}
	assigned, err = repo.Assegnazione.HasCantiere(ctx, worker.UserID, cantiere.CantiereID)
	if err != nil {
		t.Fatalf("HasCantiere after replace: %v", err)
	}
	if !assigned {
		t.Error("assignment must be visible after replace")
	}

	// replacing with an empty set clears everything
	if err := repo.Assegnazione.ReplaceCantieri(ctx, worker.UserID, nil); err != nil {
		t.Fatalf("ReplaceCantieri(empty): %v", err)
	}
	assigned, _ = repo.Assegnazione.HasCantiere(ctx, worker.UserID, cantiere.CantiereID)
	if assigned {
		t.Error("cleared assignment must not linger")
	}
}

func TestAttivitaRepo_ListFilters(t *testing.T) {
	worker, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	days := []time.Time{
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range days {
		if err := repo.Attivita.Create(ctx, &model.Attivita{Data: d, UserID: worker.UserID}); err != nil {
			t.Fatalf("seeding work day: %v", err)
		}
	}

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	list, total, err := repo.Attivita.List(ctx, &repository.AttivitaListFilters{
		UserID:    worker.UserID,
		StartDate: &start,
		EndDate:   &end,
	}, 0, 50)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("expected 2 work days in range (end inclusive), got total=%d len=%d", total, len(list))
	}
}
