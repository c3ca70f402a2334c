package dto

import "github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"

// ── child record requests ──

// CreateInterazioneRequest adds a job-site time span to a work day.
// Duration is always entered as an (ore, minuti) pair; the stored millisecond
// total is derived server-side.
type CreateInterazioneRequest struct {
	CantiereID     string  `json:"cantiere_id"     binding:"required,uuid"`
	MezzoID        *string `json:"mezzo_id"        binding:"omitempty,uuid"`
	AttrezzaturaID *string `json:"attrezzatura_id" binding:"omitempty,uuid"`
	Ore            int     `json:"ore"             binding:"min=0"`
	Minuti         int     `json:"minuti"          binding:"min=0,max=59"`
	Note           string  `json:"note"            binding:"omitempty,max=500"`
}

// UpdateInterazioneRequest updates a job-site time span; only non-nil fields
// are applied.
type UpdateInterazioneRequest struct {
	CantiereID     *string `json:"cantiere_id"     binding:"omitempty,uuid"`
	MezzoID        *string `json:"mezzo_id"        binding:"omitempty,uuid"`
	AttrezzaturaID *string `json:"attrezzatura_id" binding:"omitempty,uuid"`
	Ore            *int    `json:"ore"             binding:"omitempty,min=0"`
	Minuti         *int    `json:"minuti"          binding:"omitempty,min=0,max=59"`
	Note           *string `json:"note"            binding:"omitempty,max=500"`
}

// ReplaceInterazioniRequest atomically replaces a work day's interaction set.
type ReplaceInterazioniRequest struct {
	Interazioni []CreateInterazioneRequest `json:"interazioni" binding:"required,dive"`
}

// CreateTrasportoRequest adds a site-to-site transport to a work day.
type CreateTrasportoRequest struct {
	PartenzaID         string  `json:"partenza_id"          binding:"required,uuid"`
	DestinazioneID     string  `json:"destinazione_id"      binding:"required,uuid"`
	MezzoID            string  `json:"mezzo_id"             binding:"required,uuid"`
	MezzoTrasportatoID *string `json:"mezzo_trasportato_id" binding:"omitempty,uuid"`
	Ore                int     `json:"ore"                  binding:"min=0"`
	Minuti             int     `json:"minuti"               binding:"min=0,max=59"`
	Note               string  `json:"note"                 binding:"omitempty,max=500"`
}

// UpdateTrasportoRequest updates a transport; only non-nil fields are applied.
type UpdateTrasportoRequest struct {
	PartenzaID         *string `json:"partenza_id"          binding:"omitempty,uuid"`
	DestinazioneID     *string `json:"destinazione_id"      binding:"omitempty,uuid"`
	MezzoID            *string `json:"mezzo_id"             binding:"omitempty,uuid"`
	MezzoTrasportatoID *string `json:"mezzo_trasportato_id" binding:"omitempty,uuid"`
	Ore                *int    `json:"ore"                  binding:"omitempty,min=0"`
	Minuti             *int    `json:"minuti"               binding:"omitempty,min=0,max=59"`
	Note               *string `json:"note"                 binding:"omitempty,max=500"`
}

// CreateAssenzaRequest adds a typed absence to a work day.
type CreateAssenzaRequest struct {
	Tipo   string `json:"tipo"   binding:"required,oneof=FERIE PERMESSO CASSA_INTEGRAZIONE MUTUA PATERNITA"`
	Ore    int    `json:"ore"    binding:"min=0"`
	Minuti int    `json:"minuti" binding:"min=0,max=59"`
	Note   string `json:"note"   binding:"omitempty,max=500"`
}

// UpdateAssenzaRequest updates an absence; only non-nil fields are applied.
type UpdateAssenzaRequest struct {
	Tipo   *string `json:"tipo"   binding:"omitempty,oneof=FERIE PERMESSO CASSA_INTEGRAZIONE MUTUA PATERNITA"`
	Ore    *int    `json:"ore"    binding:"omitempty,min=0"`
	Minuti *int    `json:"minuti" binding:"omitempty,min=0,max=59"`
	Note   *string `json:"note"   binding:"omitempty,max=500"`
}

// ── work day requests ──

// CreateAttivitaRequest opens a work day, optionally seeded with its first
// child records; the whole write is one transaction. UserID may only differ
// from the caller when the caller is an admin.
type CreateAttivitaRequest struct {
	Data        string                     `json:"data"    binding:"required,datetime=2006-01-02"`
	UserID      *string                    `json:"user_id" binding:"omitempty,uuid"`
	Interazioni []CreateInterazioneRequest `json:"interazioni" binding:"omitempty,dive"`
	Trasporti   []CreateTrasportoRequest   `json:"trasporti"   binding:"omitempty,dive"`
	Assenze     []CreateAssenzaRequest     `json:"assenze"     binding:"omitempty,dive"`
}

// UpdateAttivitaRequest moves a work day to another date or worker.
type UpdateAttivitaRequest struct {
	Data   *string `json:"data"    binding:"omitempty,datetime=2006-01-02"`
	UserID *string `json:"user_id" binding:"omitempty,uuid"`
}

// AttivitaListRequest filters the admin work-day list.
type AttivitaListRequest struct {
	PaginationRequest
	UserID     string `form:"user_id"    binding:"omitempty,uuid"`
	StartDate  string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	Verificata *bool  `form:"verificata"`
}

// MyAttivitaListRequest filters a worker's own work-day list.
type MyAttivitaListRequest struct {
	PaginationRequest
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// CalendarRequest bounds the iCalendar feed.
type CalendarRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// ── responses ──

// InterazioneResponse is the job-site time-span representation.
type InterazioneResponse struct {
	ID           string        `json:"id"`
	Cantiere     RifResponse   `json:"cantiere"`
	Mezzo        *RifResponse  `json:"mezzo,omitempty"`
	Attrezzatura *RifResponse  `json:"attrezzatura,omitempty"`
	Ore          int           `json:"ore"`
	Minuti       int           `json:"minuti"`
	TempoTotale  durata.Millis `json:"tempo_totale"`
	Note         string        `json:"note,omitempty"`
}

// TrasportoResponse is the transport representation.
type TrasportoResponse struct {
	ID               string        `json:"id"`
	Partenza         RifResponse   `json:"partenza"`
	Destinazione     RifResponse   `json:"destinazione"`
	Mezzo            RifResponse   `json:"mezzo"`
	MezzoTrasportato *RifResponse  `json:"mezzo_trasportato,omitempty"`
	Ore              int           `json:"ore"`
	Minuti           int           `json:"minuti"`
	TempoTotale      durata.Millis `json:"tempo_totale"`
	Note             string        `json:"note,omitempty"`
}

// AssenzaResponse is the absence representation.
type AssenzaResponse struct {
	ID          string        `json:"id"`
	Tipo        string        `json:"tipo"`
	Ore         int           `json:"ore"`
	Minuti      int           `json:"minuti"`
	TempoTotale durata.Millis `json:"tempo_totale"`
	Note        string        `json:"note,omitempty"`
}

// AttivitaResponse is the work-day representation. TempoTotale is the sum of
// every child record's total.
type AttivitaResponse struct {
	ID          string                `json:"id"`
	ExternalID  string                `json:"external_id"`
	Data        string                `json:"data"`
	User        RifResponse           `json:"user"`
	Verificata  bool                  `json:"verificata"`
	TempoTotale durata.Millis         `json:"tempo_totale"`
	Interazioni []InterazioneResponse `json:"interazioni"`
	Trasporti   []TrasportoResponse   `json:"trasporti"`
	Assenze     []AssenzaResponse     `json:"assenze"`
}
