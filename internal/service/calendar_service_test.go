package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
)

func setupTestCalendarService() (CalendarService, *mockRepos) {
	repo, mocks := newMockRepos()
	svc := NewCalendarService(repo, zap.NewNop())
	return svc, mocks
}

func TestCalendarService_GetUserCalendar(t *testing.T) {
	svc, mocks := setupTestCalendarService()
	seedWorker(mocks, "user-001")
	day := seedAttivita(mocks, "att-001", "user-001", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), true)
	day.Interazioni = []model.Interazione{{TempoTotale: mustMillis(t, 7, 30)}}

	feed, err := svc.GetUserCalendar(context.Background(), "user-001", &dto.CalendarRequest{})
	if err != nil {
		t.Fatalf("GetUserCalendar should succeed: %v", err)
	}
	if !strings.Contains(feed, "BEGIN:VCALENDAR") || !strings.Contains(feed, "END:VCALENDAR") {
		t.Error("feed should be a calendar document")
	}
	if !strings.Contains(feed, "BEGIN:VEVENT") {
		t.Error("feed should contain the work day event")
	}
	if !strings.Contains(feed, "UID:ext-att-001") {
		t.Error("events are keyed by the work day's external id")
	}
	if !strings.Contains(feed, "Attività 7:30") {
		t.Error("summary should carry the day total")
	}
}

func TestCalendarService_GetUserCalendar_RangeFilter(t *testing.T) {
	svc, mocks := setupTestCalendarService()
	seedWorker(mocks, "user-001")
	seedAttivita(mocks, "att-001", "user-001", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), false)
	seedAttivita(mocks, "att-002", "user-001", time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), false)

	req := &dto.CalendarRequest{StartDate: "2026-03-01", EndDate: "2026-03-31"}
	feed, err := svc.GetUserCalendar(context.Background(), "user-001", req)
	if err != nil {
		t.Fatalf("GetUserCalendar should succeed: %v", err)
	}
	if !strings.Contains(feed, "UID:ext-att-001") {
		t.Error("in-range day should be present")
	}
	if strings.Contains(feed, "UID:ext-att-002") {
		t.Error("out-of-range day should be absent")
	}
}

func TestCalendarService_GetUserCalendar_Empty(t *testing.T) {
	svc, mocks := setupTestCalendarService()
	seedWorker(mocks, "user-001")

	feed, err := svc.GetUserCalendar(context.Background(), "user-001", &dto.CalendarRequest{})
	if err != nil {
		t.Fatalf("an empty feed is still a valid calendar: %v", err)
	}
	if !strings.Contains(feed, "BEGIN:VCALENDAR") {
		t.Error("feed should be a calendar document")
	}
	if strings.Contains(feed, "BEGIN:VEVENT") {
		t.Error("no events expected")
	}
}
