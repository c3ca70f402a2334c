package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if filters != nil && filters.Role != "" && u.Role != filters.Role {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

// ── Mock CantiereRepository ──

type mockCantiereRepo struct {
	cantieri map[string]*model.Cantiere
	seq      int
}

func newMockCantiereRepo() *mockCantiereRepo {
	return &mockCantiereRepo{cantieri: make(map[string]*model.Cantiere)}
}

func (m *mockCantiereRepo) Create(_ context.Context, cantiere *model.Cantiere) error {
	if cantiere.CantiereID == "" {
		m.seq++
		cantiere.CantiereID = fmt.Sprintf("cant-%03d", m.seq)
	}
	m.cantieri[cantiere.CantiereID] = cantiere
	return nil
}

func (m *mockCantiereRepo) GetByID(_ context.Context, id string) (*model.Cantiere, error) {
	if c, ok := m.cantieri[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCantiereRepo) Update(_ context.Context, cantiere *model.Cantiere) error {
	m.cantieri[cantiere.CantiereID] = cantiere
	return nil
}

func (m *mockCantiereRepo) Delete(_ context.Context, id string) error {
	delete(m.cantieri, id)
	return nil
}

func (m *mockCantiereRepo) List(_ context.Context, includeChiusi bool, _, _ int) ([]model.Cantiere, int64, error) {
	var result []model.Cantiere
	for _, c := range m.cantieri {
		if !includeChiusi && !c.Aperto {
			continue
		}
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

// ── Mock MezzoRepository ──

type mockMezzoRepo struct {
	mezzi map[string]*model.Mezzo
	seq   int
}

func newMockMezzoRepo() *mockMezzoRepo {
	return &mockMezzoRepo{mezzi: make(map[string]*model.Mezzo)}
}

func (m *mockMezzoRepo) Create(_ context.Context, mezzo *model.Mezzo) error {
	if mezzo.MezzoID == "" {
		m.seq++
		mezzo.MezzoID = fmt.Sprintf("mezzo-%03d", m.seq)
	}
	m.mezzi[mezzo.MezzoID] = mezzo
	return nil
}

func (m *mockMezzoRepo) GetByID(_ context.Context, id string) (*model.Mezzo, error) {
	if mz, ok := m.mezzi[id]; ok {
		return mz, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMezzoRepo) Update(_ context.Context, mezzo *model.Mezzo) error {
	m.mezzi[mezzo.MezzoID] = mezzo
	return nil
}

func (m *mockMezzoRepo) Delete(_ context.Context, id string) error {
	delete(m.mezzi, id)
	return nil
}

func (m *mockMezzoRepo) List(_ context.Context, _, _ int) ([]model.Mezzo, int64, error) {
	var result []model.Mezzo
	for _, mz := range m.mezzi {
		result = append(result, *mz)
	}
	return result, int64(len(result)), nil
}

// ── Mock AttrezzaturaRepository ──

type mockAttrezzaturaRepo struct {
	attrezzature map[string]*model.Attrezzatura
	seq          int
}

func newMockAttrezzaturaRepo() *mockAttrezzaturaRepo {
	return &mockAttrezzaturaRepo{attrezzature: make(map[string]*model.Attrezzatura)}
}

func (m *mockAttrezzaturaRepo) Create(_ context.Context, attrezzatura *model.Attrezzatura) error {
	if attrezzatura.AttrezzaturaID == "" {
		m.seq++
		attrezzatura.AttrezzaturaID = fmt.Sprintf("attr-%03d", m.seq)
	}
	m.attrezzature[attrezzatura.AttrezzaturaID] = attrezzatura
	return nil
}

func (m *mockAttrezzaturaRepo) GetByID(_ context.Context, id string) (*model.Attrezzatura, error) {
	if a, ok := m.attrezzature[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttrezzaturaRepo) Update(_ context.Context, attrezzatura *model.Attrezzatura) error {
	m.attrezzature[attrezzatura.AttrezzaturaID] = attrezzatura
	return nil
}

func (m *mockAttrezzaturaRepo) Delete(_ context.Context, id string) error {
	delete(m.attrezzature, id)
	return nil
}

func (m *mockAttrezzaturaRepo) List(_ context.Context, _, _ int) ([]model.Attrezzatura, int64, error) {
	var result []model.Attrezzatura
	for _, a := range m.attrezzature {
		result = append(result, *a)
	}
	return result, int64(len(result)), nil
}

// ── Mock AttivitaRepository ──

type mockAttivitaRepo struct {
	attivita map[string]*model.Attivita
	seq      int
}

func newMockAttivitaRepo() *mockAttivitaRepo {
	return &mockAttivitaRepo{attivita: make(map[string]*model.Attivita)}
}

func (m *mockAttivitaRepo) Create(_ context.Context, attivita *model.Attivita) error {
	if attivita.AttivitaID == "" {
		m.seq++
		attivita.AttivitaID = fmt.Sprintf("att-%03d", m.seq)
	}
	if attivita.ExternalID == "" {
		attivita.ExternalID = "ext-" + attivita.AttivitaID
	}
	m.attivita[attivita.AttivitaID] = attivita
	return nil
}

func (m *mockAttivitaRepo) GetByID(_ context.Context, id string) (*model.Attivita, error) {
	if a, ok := m.attivita[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttivitaRepo) GetByExternalID(_ context.Context, externalID string) (*model.Attivita, error) {
	for _, a := range m.attivita {
		if a.ExternalID == externalID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttivitaRepo) Update(_ context.Context, attivita *model.Attivita) error {
	m.attivita[attivita.AttivitaID] = attivita
	return nil
}

func (m *mockAttivitaRepo) SetVerificata(_ context.Context, id string, verificata bool, updatedBy string) error {
	a, ok := m.attivita[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Verificata = verificata
	a.UpdatedBy = &updatedBy
	return nil
}

func (m *mockAttivitaRepo) Delete(_ context.Context, id string) error {
	delete(m.attivita, id)
	return nil
}

func (m *mockAttivitaRepo) List(_ context.Context, filters *repository.AttivitaListFilters, _, _ int) ([]model.Attivita, int64, error) {
	var result []model.Attivita
	for _, a := range m.attivita {
		if filters != nil {
			if filters.UserID != "" && a.UserID != filters.UserID {
				continue
			}
			if filters.StartDate != nil && a.Data.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && a.Data.After(*filters.EndDate) {
				continue
			}
			if filters.Verificata != nil && a.Verificata != *filters.Verificata {
				continue
			}
		}
		result = append(result, *a)
	}
	return result, int64(len(result)), nil
}

// ── Mock InterazioneRepository ──

// Child mocks hold a reference to the attività mock so the date-range queries
// can resolve the parent work day, the way the SQL join does.
type mockInterazioneRepo struct {
	records  map[string]*model.Interazione
	attivita *mockAttivitaRepo
	seq      int
}

func newMockInterazioneRepo(attivita *mockAttivitaRepo) *mockInterazioneRepo {
	return &mockInterazioneRepo{records: make(map[string]*model.Interazione), attivita: attivita}
}

func (m *mockInterazioneRepo) Create(_ context.Context, record *model.Interazione) error {
	if record.InterazioneID == "" {
		m.seq++
		record.InterazioneID = fmt.Sprintf("int-%03d", m.seq)
	}
	m.records[record.InterazioneID] = record
	return nil
}

func (m *mockInterazioneRepo) GetByID(_ context.Context, id string) (*model.Interazione, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInterazioneRepo) Update(_ context.Context, record *model.Interazione) error {
	m.records[record.InterazioneID] = record
	return nil
}

func (m *mockInterazioneRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *mockInterazioneRepo) DeleteByAttivita(_ context.Context, attivitaID string) error {
	for id, r := range m.records {
		if r.AttivitaID == attivitaID {
			delete(m.records, id)
		}
	}
	return nil
}

func (m *mockInterazioneRepo) ListByUserDateRange(_ context.Context, userID string, start, endExclusive time.Time) ([]model.Interazione, error) {
	var result []model.Interazione
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		parent, ok := m.attivita.attivita[r.AttivitaID]
		if !ok || parent.Data.Before(start) || !parent.Data.Before(endExclusive) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

// ── Mock TrasportoRepository ──

type mockTrasportoRepo struct {
	records  map[string]*model.Trasporto
	attivita *mockAttivitaRepo
	seq      int
}

func newMockTrasportoRepo(attivita *mockAttivitaRepo) *mockTrasportoRepo {
	return &mockTrasportoRepo{records: make(map[string]*model.Trasporto), attivita: attivita}
}

func (m *mockTrasportoRepo) Create(_ context.Context, record *model.Trasporto) error {
	if record.TrasportoID == "" {
		m.seq++
		record.TrasportoID = fmt.Sprintf("tra-%03d", m.seq)
	}
	m.records[record.TrasportoID] = record
	return nil
}

func (m *mockTrasportoRepo) GetByID(_ context.Context, id string) (*model.Trasporto, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrasportoRepo) Update(_ context.Context, record *model.Trasporto) error {
	m.records[record.TrasportoID] = record
	return nil
}

func (m *mockTrasportoRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *mockTrasportoRepo) DeleteByAttivita(_ context.Context, attivitaID string) error {
	for id, r := range m.records {
		if r.AttivitaID == attivitaID {
			delete(m.records, id)
		}
	}
	return nil
}

func (m *mockTrasportoRepo) ListByUserDateRange(_ context.Context, userID string, start, endExclusive time.Time) ([]model.Trasporto, error) {
	var result []model.Trasporto
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		parent, ok := m.attivita.attivita[r.AttivitaID]
		if !ok || parent.Data.Before(start) || !parent.Data.Before(endExclusive) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

// ── Mock AssenzaRepository ──

type mockAssenzaRepo struct {
	records  map[string]*model.Assenza
	attivita *mockAttivitaRepo
	seq      int
}

func newMockAssenzaRepo(attivita *mockAttivitaRepo) *mockAssenzaRepo {
	return &mockAssenzaRepo{records: make(map[string]*model.Assenza), attivita: attivita}
}

func (m *mockAssenzaRepo) Create(_ context.Context, record *model.Assenza) error {
	if record.AssenzaID == "" {
		m.seq++
		record.AssenzaID = fmt.Sprintf("ass-%03d", m.seq)
	}
	m.records[record.AssenzaID] = record
	return nil
}

func (m *mockAssenzaRepo) GetByID(_ context.Context, id string) (*model.Assenza, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssenzaRepo) Update(_ context.Context, record *model.Assenza) error {
	m.records[record.AssenzaID] = record
	return nil
}

func (m *mockAssenzaRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *mockAssenzaRepo) DeleteByAttivita(_ context.Context, attivitaID string) error {
	for id, r := range m.records {
		if r.AttivitaID == attivitaID {
			delete(m.records, id)
		}
	}
	return nil
}

func (m *mockAssenzaRepo) ListByUserDateRange(_ context.Context, userID string, start, endExclusive time.Time) ([]model.Assenza, error) {
	var result []model.Assenza
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		parent, ok := m.attivita.attivita[r.AttivitaID]
		if !ok || parent.Data.Before(start) || !parent.Data.Before(endExclusive) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

// ── Mock AssegnazioneRepository ──

type mockAssegnazioneRepo struct {
	cantieri map[string]map[string]bool // userID -> cantiereID set
	mezzi    map[string]map[string]bool // userID -> mezzoID set
}

func newMockAssegnazioneRepo() *mockAssegnazioneRepo {
	return &mockAssegnazioneRepo{
		cantieri: make(map[string]map[string]bool),
		mezzi:    make(map[string]map[string]bool),
	}
}

func (m *mockAssegnazioneRepo) assignCantiere(userID, cantiereID string) {
	if m.cantieri[userID] == nil {
		m.cantieri[userID] = make(map[string]bool)
	}
	m.cantieri[userID][cantiereID] = true
}

func (m *mockAssegnazioneRepo) assignMezzo(userID, mezzoID string) {
	if m.mezzi[userID] == nil {
		m.mezzi[userID] = make(map[string]bool)
	}
	m.mezzi[userID][mezzoID] = true
}

func (m *mockAssegnazioneRepo) HasCantiere(_ context.Context, userID, cantiereID string) (bool, error) {
	return m.cantieri[userID][cantiereID], nil
}

func (m *mockAssegnazioneRepo) HasMezzo(_ context.Context, userID, mezzoID string) (bool, error) {
	return m.mezzi[userID][mezzoID], nil
}

func (m *mockAssegnazioneRepo) ReplaceCantieri(_ context.Context, userID string, cantiereIDs []string) error {
	m.cantieri[userID] = make(map[string]bool)
	for _, id := range cantiereIDs {
		m.cantieri[userID][id] = true
	}
	return nil
}

func (m *mockAssegnazioneRepo) ReplaceMezzi(_ context.Context, userID string, mezzoIDs []string) error {
	m.mezzi[userID] = make(map[string]bool)
	for _, id := range mezzoIDs {
		m.mezzi[userID][id] = true
	}
	return nil
}

// ── aggregate for tests ──

type mockRepos struct {
	user         *mockUserRepo
	cantiere     *mockCantiereRepo
	mezzo        *mockMezzoRepo
	attrezzatura *mockAttrezzaturaRepo
	attivita     *mockAttivitaRepo
	interazione  *mockInterazioneRepo
	trasporto    *mockTrasportoRepo
	assenza      *mockAssenzaRepo
	assegnazione *mockAssegnazioneRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	attivita := newMockAttivitaRepo()
	mocks := &mockRepos{
		user:         newMockUserRepo(),
		cantiere:     newMockCantiereRepo(),
		mezzo:        newMockMezzoRepo(),
		attrezzatura: newMockAttrezzaturaRepo(),
		attivita:     attivita,
		interazione:  newMockInterazioneRepo(attivita),
		trasporto:    newMockTrasportoRepo(attivita),
		assenza:      newMockAssenzaRepo(attivita),
		assegnazione: newMockAssegnazioneRepo(),
	}
	repo := &repository.Repository{
		User:         mocks.user,
		Cantiere:     mocks.cantiere,
		Mezzo:        mocks.mezzo,
		Attrezzatura: mocks.attrezzatura,
		Attivita:     mocks.attivita,
		Interazione:  mocks.interazione,
		Trasporto:    mocks.trasporto,
		Assenza:      mocks.assenza,
		Assegnazione: mocks.assegnazione,
	}
	return repo, mocks
}
