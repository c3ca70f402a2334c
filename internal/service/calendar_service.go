package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/repository"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"
)

// CalendarService renders a worker's work days as an iCalendar feed, one
// all-day event per recorded day.
type CalendarService interface {
	GetUserCalendar(ctx context.Context, userID string, req *dto.CalendarRequest) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService creates the CalendarService.
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

// calendar feeds are unpaged; this bounds a runaway range
const calendarMaxEvents = 1000

func (s *calendarService) GetUserCalendar(ctx context.Context, userID string, req *dto.CalendarRequest) (string, error) {
	filters := &repository.AttivitaListFilters{UserID: userID}
	if req.StartDate != "" {
		start, err := time.ParseInLocation(dto.DateLayout, req.StartDate, time.UTC)
		if err != nil {
			return "", err
		}
		filters.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.ParseInLocation(dto.DateLayout, req.EndDate, time.UTC)
		if err != nil {
			return "", err
		}
		filters.EndDate = &end
	}

	records, _, err := s.repo.Attivita.List(ctx, filters, 0, calendarMaxEvents)
	if err != nil {
		s.logger.Error("calendar query failed", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Lunardi Movimento Terra//Attivita//IT")
	cal.SetName("Attività")

	now := time.Now().UTC()
	for i := range records {
		attivita := &records[i]

		event := cal.AddEvent(attivita.ExternalID)
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(attivita.Data)
		event.SetAllDayEndAt(attivita.Data.AddDate(0, 0, 1))
		event.SetSummary(eventSummary(attivita))
		event.SetDescription(eventDescription(attivita))
	}

	return cal.Serialize(), nil
}

func eventSummary(attivita *model.Attivita) string {
	var totals []durata.Millis
	for i := range attivita.Interazioni {
		totals = append(totals, attivita.Interazioni[i].TempoTotale)
	}
	for i := range attivita.Trasporti {
		totals = append(totals, attivita.Trasporti[i].TempoTotale)
	}
	for i := range attivita.Assenze {
		totals = append(totals, attivita.Assenze[i].TempoTotale)
	}
	ore, minuti := durata.Sum(totals).OreMinuti()

	summary := fmt.Sprintf("Attività %d:%02d", ore, minuti)
	if attivita.Verificata {
		summary += " ✓"
	}
	return summary
}

func eventDescription(attivita *model.Attivita) string {
	return fmt.Sprintf("Interazioni: %d, Trasporti: %d, Assenze: %d",
		len(attivita.Interazioni), len(attivita.Trasporti), len(attivita.Assenze))
}
