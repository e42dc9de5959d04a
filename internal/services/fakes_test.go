package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"sales-dashboard/internal/entities"
	"sales-dashboard/internal/repositories"
	apperrors "sales-dashboard/pkg/errors"
)

type fakeTx struct {
	calls int
}

func (f *fakeTx) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	return fn(nil)
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string]string
	expires map[string]time.Time
	now     time.Time
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data:    map[string]string{},
		expires: map[string]time.Time{},
		now:     time.Date(2025, time.March, 13, 12, 0, 0, 0, time.UTC),
	}
}

// advance moves the cache clock, dropping keys whose TTL has run out.
func (c *fakeCache) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	for k, at := range c.expires {
		if !c.now.Before(at) {
			delete(c.data, k)
			delete(c.expires, k)
		}
	}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	default:
		b, _ := json.Marshal(v)
		c.data[key] = string(b)
	}
	delete(c.expires, key)
	if expiration > 0 {
		c.expires[key] = c.now.Add(expiration)
	}
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		delete(c.expires, k)
	}
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; !ok {
		return false, nil
	}
	c.expires[key] = c.now.Add(expiration)
	return true, nil
}

func (c *fakeCache) keysWithPrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n
}

type fakeActivities struct {
	mu     sync.Mutex
	events []entities.ActivityEvent
	err    error
	listed int
}

func (f *fakeActivities) ListBetween(ctx context.Context, start, end time.Time) ([]entities.ActivityEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed++
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.ActivityEvent
	for _, ev := range f.events {
		if !ev.Timestamp.Before(start) && ev.Timestamp.Before(end) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeActivities) ListByActionBetween(ctx context.Context, action entities.ActionType, start, end time.Time) ([]entities.ActivityEvent, error) {
	all, err := f.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	var out []entities.ActivityEvent
	for _, ev := range all {
		if ev.ActionType == action {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeActivities) Create(ctx context.Context, tx pgx.Tx, ev entities.ActivityEvent) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return uuid.Nil, f.err
	}
	ev.ID = uuid.New()
	f.events = append(f.events, ev)
	return ev.ID, nil
}

type fakeAppointments struct {
	mu               sync.Mutex
	items            []entities.Appointment
	err              error
	callStatusWrites int
}

func (f *fakeAppointments) ListBetween(ctx context.Context, start, end time.Time) ([]entities.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.Appointment
	for _, a := range f.items {
		if !a.ScheduledDate.Before(start) && a.ScheduledDate.Before(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) find(match func(entities.Appointment) bool) (int, bool) {
	for i, a := range f.items {
		if match(a) {
			return i, true
		}
	}
	return -1, false
}

func (f *fakeAppointments) FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i, ok := f.find(func(a entities.Appointment) bool { return a.ID == id }); ok {
		a := f.items[i]
		return &a, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeAppointments) FindByLeadID(ctx context.Context, tx pgx.Tx, leadID string) (*entities.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i, ok := f.find(func(a entities.Appointment) bool { return a.LeadID == leadID }); ok {
		a := f.items[i]
		return &a, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeAppointments) Upsert(ctx context.Context, tx pgx.Tx, a entities.Appointment) (*entities.Appointment, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, false, f.err
	}
	if i, ok := f.find(func(x entities.Appointment) bool { return x.LeadID == a.LeadID }); ok {
		f.items[i].LeadName = a.LeadName
		f.items[i].UserID = a.UserID
		f.items[i].ScheduledDate = a.ScheduledDate
		out := f.items[i]
		return &out, false, nil
	}
	a.ID = uuid.New()
	a.Status = entities.StatusPending
	f.items = append(f.items, a)
	return &a, true, nil
}

func (f *fakeAppointments) UpdateCallStatus(ctx context.Context, tx pgx.Tx, leadID string, status entities.AppointmentStatus, revenue null.Float64, metadata json.RawMessage) (*entities.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.find(func(a entities.Appointment) bool { return a.LeadID == leadID })
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	f.callStatusWrites++
	f.items[i].Status = status
	f.items[i].RevenueReceived = revenue
	out := f.items[i]
	return &out, nil
}

func (f *fakeAppointments) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entities.AppointmentStatus, revenue null.Float64) (*entities.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.find(func(a entities.Appointment) bool { return a.ID == id })
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	f.items[i].Status = status
	f.items[i].RevenueReceived = revenue
	out := f.items[i]
	return &out, nil
}

type fakeProfiles struct {
	mu    sync.Mutex
	items []entities.Profile
}

func (f *fakeProfiles) ListActive(ctx context.Context) ([]entities.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Profile
	for _, p := range f.items {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfiles) List(ctx context.Context, search string) ([]entities.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Profile
	for _, p := range f.items {
		if search == "" || strings.Contains(strings.ToLower(p.FullName), strings.ToLower(search)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfiles) FindByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeProfiles) FindByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if strings.EqualFold(p.Email, strings.TrimSpace(email)) {
			out := p
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeProfiles) Create(ctx context.Context, tx pgx.Tx, p entities.Profile) (*entities.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if strings.EqualFold(existing.Email, p.Email) {
			return nil, apperrors.ErrAlreadyExists
		}
	}
	p.ID = uuid.New()
	p.Email = strings.ToLower(p.Email)
	f.items = append(f.items, p)
	return &p, nil
}

func (f *fakeProfiles) Update(ctx context.Context, tx pgx.Tx, p entities.Profile) (*entities.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == p.ID {
			p.PasswordHash = f.items[i].PasswordHash
			f.items[i] = p
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeProfiles) UpdatePassword(ctx context.Context, tx pgx.Tx, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].PasswordHash = hash
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeGoals struct {
	mu    sync.Mutex
	items []entities.UserGoal
}

func (f *fakeGoals) List(ctx context.Context) ([]entities.UserGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entities.UserGoal(nil), f.items...), nil
}

func (f *fakeGoals) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.UserGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.UserGoal
	for _, g := range f.items {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoals) Upsert(ctx context.Context, tx pgx.Tx, userID, taskTypeID uuid.UUID, dailyGoal int) (*entities.UserGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].TaskTypeID == taskTypeID {
			f.items[i].DailyGoal = dailyGoal
			out := f.items[i]
			return &out, nil
		}
	}
	g := entities.UserGoal{ID: uuid.New(), UserID: userID, TaskTypeID: taskTypeID, DailyGoal: dailyGoal}
	f.items = append(f.items, g)
	return &g, nil
}

func (f *fakeGoals) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeTaskTypes struct {
	mu    sync.Mutex
	items []entities.TaskType
}

func (f *fakeTaskTypes) List(ctx context.Context) ([]entities.TaskType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entities.TaskType(nil), f.items...), nil
}

func (f *fakeTaskTypes) FindByID(ctx context.Context, id uuid.UUID) (*entities.TaskType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.items {
		if t.ID == id {
			out := t
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTaskTypes) FindByName(ctx context.Context, tx pgx.Tx, name string) (*entities.TaskType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.items {
		if t.Name == name {
			out := t
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTaskTypes) Create(ctx context.Context, tx pgx.Tx, t entities.TaskType) (*entities.TaskType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.Name == t.Name {
			return nil, apperrors.ErrAlreadyExists
		}
	}
	t.ID = uuid.New()
	f.items = append(f.items, t)
	return &t, nil
}

func (f *fakeTaskTypes) UpdateLabel(ctx context.Context, tx pgx.Tx, id uuid.UUID, label string) (*entities.TaskType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Label = label
			out := f.items[i]
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTaskTypes) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeCompanyGoals struct {
	row *entities.CompanyGoalsRow
}

func (f *fakeCompanyGoals) Get(ctx context.Context) (*entities.CompanyGoalsRow, error) {
	return f.row, nil
}

func (f *fakeCompanyGoals) Upsert(ctx context.Context, tx pgx.Tx, row entities.CompanyGoalsRow) (*entities.CompanyGoalsRow, error) {
	f.row = &row
	return &row, nil
}

type fakeWebhookLogs struct {
	mu        sync.Mutex
	items     []entities.WebhookLog
	lastLimit uint64
}

func (f *fakeWebhookLogs) Create(ctx context.Context, tx pgx.Tx, log entities.WebhookLog) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	log.ID = int64(len(f.items) + 1)
	f.items = append(f.items, log)
	return log.ID, nil
}

func (f *fakeWebhookLogs) ListRecent(ctx context.Context, limit uint64) ([]entities.WebhookLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	return append([]entities.WebhookLog(nil), f.items...), nil
}

func (f *fakeWebhookLogs) statuses() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, 0, len(f.items))
	for _, l := range f.items {
		out = append(out, l.StatusCode)
	}
	return out
}
