// Package registry owns the canonical member list. Every mutation runs as
// one critical section: locate member, apply the change, persist the whole
// list to its durable slot, then hand each subscriber a fresh snapshot.
// Nothing outside this package ever sees the live list.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/mealbook/internal/dateutil"
	"github.com/dukerupert/mealbook/internal/model"
)

const (
	membersKey       = "members"
	adminPasswordKey = "admin_password"

	// Day records older than this are dropped at load time.
	retentionDays = 60

	// Oldest note-history entries are evicted past this bound.
	noteHistoryMax = 20

	defaultAdminPassword = "123456"
)

// ErrMemberNotFound is returned by mutations that reference an unknown
// member id.
var ErrMemberNotFound = errors.New("member not found")

// KV is the durable slot primitive the registry persists through.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

type subscriber struct {
	id int
	fn func([]model.Member)
}

type Registry struct {
	kv     KV
	now    func() time.Time
	logger *slog.Logger

	mu      sync.Mutex
	members []model.Member
	subs    []subscriber
	nextSub int
}

// New creates a Registry over the given durable store. A nil clock defaults
// to time.Now. Call Load before use.
func New(kv KV, clock func() time.Time, logger *slog.Logger) *Registry {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{kv: kv, now: clock, logger: logger}
}

// Load reads the member list from durable storage, seeding a single default
// member if the slot is absent or unreadable. It also ensures the admin
// credential slot exists, then prunes day records past the retention window.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, ok, err := r.kv.Get(membersKey)
	if err != nil {
		return fmt.Errorf("load members: %w", err)
	}

	seeded := false
	if ok {
		var members []model.Member
		if err := json.Unmarshal([]byte(raw), &members); err != nil {
			r.logger.Warn("stored member data unreadable, reseeding", "error", err)
			seeded = true
		} else {
			for i := range members {
				normalizeMember(&members[i])
			}
			r.members = members
		}
	} else {
		seeded = true
	}

	if seeded {
		r.members = []model.Member{r.defaultMember()}
		if err := r.persistLocked(); err != nil {
			return fmt.Errorf("seed members: %w", err)
		}
	}

	if err := r.ensureAdminPasswordLocked(); err != nil {
		return err
	}

	return r.pruneLocked()
}

// defaultMember is the seed resident for a fresh install, with today's
// default day record already in place.
func (r *Registry) defaultMember() model.Member {
	today := dateutil.ISO(r.now())
	return model.Member{
		ID:             uuid.NewString(),
		Name:           "Resident One",
		RoomNumber:     "101",
		Phone:          "",
		Password:       "123",
		IsContinuousOn: true,
		DailyData:      map[string]*model.DayRecord{today: model.NewDayRecord()},
		CreatedAt:      r.now().UnixMilli(),
	}
}

// normalizeMember fills in map fields that older or hand-edited blobs may
// have left null, so mutations never write to a nil map.
func normalizeMember(m *model.Member) {
	if m.DailyData == nil {
		m.DailyData = map[string]*model.DayRecord{}
	}
	for _, rec := range m.DailyData {
		if rec.NoteHistory == nil {
			rec.NoteHistory = []string{}
		}
		if rec.MealStatus == nil {
			rec.MealStatus = map[model.MealType]bool{}
		}
		if rec.GuestMeals == nil {
			rec.GuestMeals = map[model.MealType]int{}
		}
	}
}

// pruneLocked drops day records strictly older than the retention threshold.
// Records dated exactly at the threshold survive. Persists only if at least
// one record was dropped.
func (r *Registry) pruneLocked() error {
	threshold := dateutil.ISO(r.now().AddDate(0, 0, -retentionDays))

	changed := false
	for i := range r.members {
		for date := range r.members[i].DailyData {
			if date < threshold {
				delete(r.members[i].DailyData, date)
				changed = true
			}
		}
	}

	if !changed {
		return nil
	}
	r.logger.Info("pruned day records", "threshold", threshold)
	return r.persistLocked()
}

func (r *Registry) ensureAdminPasswordLocked() error {
	_, ok, err := r.kv.Get(adminPasswordKey)
	if err != nil {
		return fmt.Errorf("load admin password: %w", err)
	}
	if ok {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}
	if err := r.kv.Set(adminPasswordKey, string(hash)); err != nil {
		return fmt.Errorf("seed admin password: %w", err)
	}
	return nil
}

// persistLocked serializes the member list to its slot, then notifies every
// subscriber with its own deep-copied snapshot, in registration order.
// Callers must hold r.mu; subscriber callbacks must not call back into the
// registry.
func (r *Registry) persistLocked() error {
	data, err := json.Marshal(r.members)
	if err != nil {
		return fmt.Errorf("marshal members: %w", err)
	}
	if err := r.kv.Set(membersKey, string(data)); err != nil {
		return fmt.Errorf("persist members: %w", err)
	}
	for _, sub := range r.subs {
		sub.fn(model.CloneMembers(r.members))
	}
	return nil
}

// Subscribe registers fn to receive a snapshot after every committed
// mutation. fn is invoked immediately with the current snapshot. The
// returned function cancels the subscription.
func (r *Registry) Subscribe(fn func([]model.Member)) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs = append(r.subs, subscriber{id: id, fn: fn})
	fn(model.CloneMembers(r.members))
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.subs = slices.DeleteFunc(r.subs, func(s subscriber) bool {
			return s.id == id
		})
	}
}

// Snapshot returns a deep copy of the current member list.
func (r *Registry) Snapshot() []model.Member {
	r.mu.Lock()
	defer r.mu.Unlock()
	return model.CloneMembers(r.members)
}

func (r *Registry) findLocked(id string) *model.Member {
	for i := range r.members {
		if r.members[i].ID == id {
			return &r.members[i]
		}
	}
	return nil
}

// dayLocked returns the member's record for date, creating the default
// record on first touch.
func dayLocked(m *model.Member, date string) *model.DayRecord {
	if rec, ok := m.DailyData[date]; ok {
		return rec
	}
	rec := model.NewDayRecord()
	m.DailyData[date] = rec
	return rec
}

// AddMember appends a new member with a fresh id and returns a copy of it.
func (r *Registry) AddMember(name, roomNumber, phone, password string) (model.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := model.Member{
		ID:             uuid.NewString(),
		Name:           name,
		RoomNumber:     roomNumber,
		Phone:          phone,
		Password:       password,
		IsContinuousOn: true,
		DailyData:      map[string]*model.DayRecord{},
		CreatedAt:      r.now().UnixMilli(),
	}
	r.members = append(r.members, m)
	if err := r.persistLocked(); err != nil {
		return model.Member{}, err
	}
	return m.Clone(), nil
}

// DeleteMember removes a member entirely. There is no undo.
func (r *Registry) DeleteMember(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.members)
	r.members = slices.DeleteFunc(r.members, func(m model.Member) bool {
		return m.ID == id
	})
	if len(r.members) == before {
		return ErrMemberNotFound
	}
	return r.persistLocked()
}

// SetContinuous sets the member's master on/off switch.
func (r *Registry) SetContinuous(id string, on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.findLocked(id)
	if m == nil {
		return ErrMemberNotFound
	}
	m.IsContinuousOn = on
	return r.persistLocked()
}

// SetMemberPassword replaces the member's password verbatim. Empty is
// allowed; no strength requirement applies.
func (r *Registry) SetMemberPassword(id, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.findLocked(id)
	if m == nil {
		return ErrMemberNotFound
	}
	m.Password = password
	return r.persistLocked()
}

// VerifyMemberPassword reports whether the given password matches the
// member's stored one.
func (r *Registry) VerifyMemberPassword(id, password string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.findLocked(id)
	if m == nil {
		return false, ErrMemberNotFound
	}
	return m.Password == password, nil
}

// SetMealStatus turns one meal on or off for the member on the given date.
func (r *Registry) SetMealStatus(id, date string, meal model.MealType, on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.findLocked(id)
	if m == nil {
		return ErrMemberNotFound
	}
	dayLocked(m, date).MealStatus[meal] = on
	return r.persistLocked()
}

// AdjustGuestMeals increments or decrements the guest count for one meal on
// the given date. Decrements floor at zero. Returns the new count.
func (r *Registry) AdjustGuestMeals(id, date string, meal model.MealType, increment bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.findLocked(id)
	if m == nil {
		return 0, ErrMemberNotFound
	}
	rec := dayLocked(m, date)
	if increment {
		rec.GuestMeals[meal]++
	} else {
		rec.GuestMeals[meal] = max(0, rec.GuestMeals[meal]-1)
	}
	if err := r.persistLocked(); err != nil {
		return 0, err
	}
	return rec.GuestMeals[meal], nil
}

// SetNote replaces the member's note for the given date. The previous note
// is appended to the day's history when it is non-empty, differs from the
// new note, and is not already present anywhere in the history. History is
// bounded; the oldest entry is evicted past the cap.
func (r *Registry) SetNote(id, date, note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.findLocked(id)
	if m == nil {
		return ErrMemberNotFound
	}
	rec := dayLocked(m, date)
	if rec.Note != "" && rec.Note != note && !slices.Contains(rec.NoteHistory, rec.Note) {
		rec.NoteHistory = append(rec.NoteHistory, rec.Note)
		if len(rec.NoteHistory) > noteHistoryMax {
			rec.NoteHistory = rec.NoteHistory[len(rec.NoteHistory)-noteHistoryMax:]
		}
	}
	rec.Note = note
	return r.persistLocked()
}

// ResetAllMeals clears every member's daily data. Identity fields, the
// master switch, and passwords are untouched. Irreversible.
func (r *Registry) ResetAllMeals() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.members {
		r.members[i].DailyData = map[string]*model.DayRecord{}
	}
	return r.persistLocked()
}

// VerifyAdminPassword reports whether the given password matches the stored
// admin credential. A fresh install matches the default password.
func (r *Registry) VerifyAdminPassword(password string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureAdminPasswordLocked(); err != nil {
		return false, err
	}
	hash, _, err := r.kv.Get(adminPasswordKey)
	if err != nil {
		return false, fmt.Errorf("load admin password: %w", err)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, nil
}

// SetAdminPassword replaces the stored admin credential.
func (r *Registry) SetAdminPassword(password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := r.kv.Set(adminPasswordKey, string(hash)); err != nil {
		return fmt.Errorf("store admin password: %w", err)
	}
	return nil
}
