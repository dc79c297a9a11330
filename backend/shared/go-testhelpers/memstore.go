package testhelpers

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/staynest/mono-repo/backend/shared/go-models"
	"github.com/staynest/mono-repo/backend/shared/go-repositories"
)

// MemStore is an in-memory repositories.Store for unit tests. RunInTx
// serializes transactions and restores a snapshot when fn fails, so
// rollback behaviour matches Postgres closely enough for service tests.
type MemStore struct {
	mu      sync.Mutex
	txMu    sync.Mutex
	clock   time.Time
	failure error

	properties   map[uuid.UUID]models.Property
	projects     map[uuid.UUID]models.Project
	applications map[uuid.UUID]models.FreelancerApplication
	assignments  map[uuid.UUID]models.Assignment
	listings     map[uuid.UUID]models.Listing
	bookings     map[uuid.UUID]models.Booking
	users        map[uuid.UUID]models.User
	profiles     map[uuid.UUID]models.FreelancerProfile
	events       []models.EventLog
}

var _ repositories.Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		clock:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		properties:   map[uuid.UUID]models.Property{},
		projects:     map[uuid.UUID]models.Project{},
		applications: map[uuid.UUID]models.FreelancerApplication{},
		assignments:  map[uuid.UUID]models.Assignment{},
		listings:     map[uuid.UUID]models.Listing{},
		bookings:     map[uuid.UUID]models.Booking{},
		users:        map[uuid.UUID]models.User{},
		profiles:     map[uuid.UUID]models.FreelancerProfile{},
	}
}

// SetFailure makes every subsequent call return err until cleared with nil.
func (m *MemStore) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

// Events returns a copy of the event log in insertion order.
func (m *MemStore) Events() []models.EventLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.events)
}

func (m *MemStore) Properties() repositories.PropertyRepository      { return memProperties{m} }
func (m *MemStore) Projects() repositories.ProjectRepository         { return memProjects{m} }
func (m *MemStore) Applications() repositories.ApplicationRepository { return memApplications{m} }
func (m *MemStore) Assignments() repositories.AssignmentRepository   { return memAssignments{m} }
func (m *MemStore) Listings() repositories.ListingRepository         { return memListings{m} }
func (m *MemStore) Bookings() repositories.BookingRepository         { return memBookings{m} }
func (m *MemStore) Users() repositories.UserRepository               { return memUsers{m} }
func (m *MemStore) FreelancerProfiles() repositories.FreelancerProfileRepository {
	return memProfiles{m}
}
func (m *MemStore) EventLogs() repositories.EventLogRepository { return memEvents{m} }

func (m *MemStore) RunInTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if err := m.fail(); err != nil {
		return err
	}
	snap := m.snapshot()
	if err := fn(memTx{m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

// memTx is the Store handed to RunInTx callbacks; nested calls join the
// outer transaction.
type memTx struct {
	*MemStore
}

func (t memTx) RunInTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	return fn(t)
}

type memSnapshot struct {
	properties   map[uuid.UUID]models.Property
	projects     map[uuid.UUID]models.Project
	applications map[uuid.UUID]models.FreelancerApplication
	assignments  map[uuid.UUID]models.Assignment
	listings     map[uuid.UUID]models.Listing
	bookings     map[uuid.UUID]models.Booking
	users        map[uuid.UUID]models.User
	profiles     map[uuid.UUID]models.FreelancerProfile
	events       []models.EventLog
}

func (m *MemStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memSnapshot{
		properties:   maps.Clone(m.properties),
		projects:     maps.Clone(m.projects),
		applications: maps.Clone(m.applications),
		assignments:  maps.Clone(m.assignments),
		listings:     maps.Clone(m.listings),
		bookings:     maps.Clone(m.bookings),
		users:        maps.Clone(m.users),
		profiles:     maps.Clone(m.profiles),
		events:       slices.Clone(m.events),
	}
}

func (m *MemStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties = s.properties
	m.projects = s.projects
	m.applications = s.applications
	m.assignments = s.assignments
	m.listings = s.listings
	m.bookings = s.bookings
	m.users = s.users
	m.profiles = s.profiles
	m.events = s.events
}

func (m *MemStore) fail() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failure
}

// lock takes the data mutex and reports any injected failure.
func (m *MemStore) lock() error {
	m.mu.Lock()
	if m.failure != nil {
		err := m.failure
		m.mu.Unlock()
		return err
	}
	return nil
}

// tick returns a strictly increasing timestamp; callers hold m.mu.
func (m *MemStore) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}

/* ------------------------------------------------------------------
   Properties
------------------------------------------------------------------ */

type memProperties struct{ m *MemStore }

func (r memProperties) Create(ctx context.Context, p *models.Property) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	now := r.m.tick()
	p.CreatedAt, p.UpdatedAt, p.RowVersion = now, now, 1
	cp := *p
	cp.Photos = slices.Clone(p.Photos)
	r.m.properties[p.ID] = cp
	return nil
}

func (r memProperties) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	p, ok := r.m.properties[id]
	if !ok {
		return nil, nil
	}
	p.Photos = slices.Clone(p.Photos)
	return &p, nil
}

func (r memProperties) LockByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.GetByID(ctx, id)
}

func (r memProperties) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PropertyStatus) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	p, ok := r.m.properties[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.Status = status
	p.RowVersion++
	p.UpdatedAt = r.m.tick()
	r.m.properties[id] = p
	return nil
}

func (r memProperties) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	cur, ok := r.m.properties[p.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cur.Title, cur.Description, cur.Address = p.Title, p.Description, p.Address
	cur.BaseNightlyRate, cur.MaxGuests = p.BaseNightlyRate, p.MaxGuests
	cur.RowVersion++
	cur.UpdatedAt = r.m.tick()
	r.m.properties[p.ID] = cur
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r memProperties) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return repositories.UpdateVersioned(ctx, id, repositories.MaxUpdateAttempts, r.GetByID, r.UpdateIfVersion, mutate)
}

/* ------------------------------------------------------------------
   Projects
------------------------------------------------------------------ */

type memProjects struct{ m *MemStore }

func (r memProjects) Create(ctx context.Context, p *models.Project) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	now := r.m.tick()
	p.CreatedAt, p.UpdatedAt, p.RowVersion = now, now, 1
	r.m.projects[p.ID] = *p
	return nil
}

func (r memProjects) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	p, ok := r.m.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProjects) LockByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return r.GetByID(ctx, id)
}

func (r memProjects) GetByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.Project, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	for _, p := range r.m.projects {
		if p.PropertyID == propertyID {
			return &p, nil
		}
	}
	return nil, nil
}

func (r memProjects) List(ctx context.Context, status *models.ProjectStatus) ([]*models.Project, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	var out []*models.Project
	for _, p := range r.m.projects {
		if status != nil && p.Status != *status {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r memProjects) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProjectStatus) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	p, ok := r.m.projects[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.Status = status
	p.RowVersion++
	p.UpdatedAt = r.m.tick()
	r.m.projects[id] = p
	return nil
}

func (r memProjects) UpdateIfVersion(ctx context.Context, p *models.Project, expected int64) (pgconn.CommandTag, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	cur, ok := r.m.projects[p.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cur.Notes = p.Notes
	cur.RowVersion++
	cur.UpdatedAt = r.m.tick()
	r.m.projects[p.ID] = cur
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r memProjects) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Project) error) error {
	return repositories.UpdateVersioned(ctx, id, repositories.MaxUpdateAttempts, r.GetByID, r.UpdateIfVersion, mutate)
}

/* ------------------------------------------------------------------
   Applications & assignments
------------------------------------------------------------------ */

type memApplications struct{ m *MemStore }

func (r memApplications) Create(ctx context.Context, a *models.FreelancerApplication) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	for _, existing := range r.m.applications {
		if existing.ProjectID == a.ProjectID && existing.FreelancerID == a.FreelancerID {
			return uniqueViolation(repositories.ConstraintApplicationsFreelancer)
		}
	}
	now := r.m.tick()
	a.CreatedAt, a.UpdatedAt = now, now
	r.m.applications[a.ID] = *a
	return nil
}

func (r memApplications) GetByID(ctx context.Context, id uuid.UUID) (*models.FreelancerApplication, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	a, ok := r.m.applications[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r memApplications) GetByProjectAndFreelancer(ctx context.Context, projectID, freelancerID uuid.UUID) (*models.FreelancerApplication, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	for _, a := range r.m.applications {
		if a.ProjectID == projectID && a.FreelancerID == freelancerID {
			return &a, nil
		}
	}
	return nil, nil
}

func (r memApplications) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.FreelancerApplication, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	var out []*models.FreelancerApplication
	for _, a := range r.m.applications {
		if a.ProjectID == projectID {
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r memApplications) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	a, ok := r.m.applications[id]
	if !ok {
		return pgx.ErrNoRows
	}
	a.Status = status
	a.UpdatedAt = r.m.tick()
	r.m.applications[id] = a
	return nil
}

func (r memApplications) RejectAllForProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	if err := r.m.lock(); err != nil {
		return 0, err
	}
	defer r.m.mu.Unlock()
	var n int64
	for id, a := range r.m.applications {
		if a.ProjectID == projectID {
			a.Status = models.ApplicationStatusRejected
			a.UpdatedAt = r.m.tick()
			r.m.applications[id] = a
			n++
		}
	}
	return n, nil
}

type memAssignments struct{ m *MemStore }

func (r memAssignments) Create(ctx context.Context, a *models.Assignment) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	a.CreatedAt = r.m.tick()
	r.m.assignments[a.ID] = *a
	return nil
}

func (r memAssignments) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Assignment, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	var out []*models.Assignment
	for _, a := range r.m.assignments {
		if a.ProjectID == projectID {
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

/* ------------------------------------------------------------------
   Listings
------------------------------------------------------------------ */

type memListings struct{ m *MemStore }

func (r memListings) Create(ctx context.Context, l *models.Listing) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	for _, existing := range r.m.listings {
		if existing.Slug == l.Slug {
			return uniqueViolation(repositories.ConstraintListingsSlug)
		}
		if existing.PropertyID == l.PropertyID {
			return uniqueViolation(repositories.ConstraintListingsProperty)
		}
	}
	now := r.m.tick()
	l.CreatedAt, l.UpdatedAt = now, now
	cp := *l
	cp.GuestPhotos = slices.Clone(l.GuestPhotos)
	r.m.listings[l.ID] = cp
	return nil
}

func (r memListings) find(match func(models.Listing) bool) (*models.Listing, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	for _, l := range r.m.listings {
		if match(l) {
			l.GuestPhotos = slices.Clone(l.GuestPhotos)
			return &l, nil
		}
	}
	return nil, nil
}

func (r memListings) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return r.find(func(l models.Listing) bool { return l.ID == id })
}

func (r memListings) GetByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.Listing, error) {
	return r.find(func(l models.Listing) bool { return l.PropertyID == propertyID })
}

func (r memListings) LockByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.Listing, error) {
	return r.GetByPropertyID(ctx, propertyID)
}

func (r memListings) GetBySlug(ctx context.Context, slug string) (*models.Listing, error) {
	return r.find(func(l models.Listing) bool { return l.Slug == slug })
}

func (r memListings) Update(ctx context.Context, l *models.Listing) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	cur, ok := r.m.listings[l.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.m.listings {
		if id != l.ID && existing.Slug == l.Slug {
			return uniqueViolation(repositories.ConstraintListingsSlug)
		}
	}
	cur.Slug, cur.Title, cur.Description = l.Slug, l.Title, l.Description
	cur.NightlyRate, cur.CleaningFee, cur.MaxGuests = l.NightlyRate, l.CleaningFee, l.MaxGuests
	cur.GuestPhotos = slices.Clone(l.GuestPhotos)
	cur.UpdatedAt = r.m.tick()
	r.m.listings[l.ID] = cur
	return nil
}

func (r memListings) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	cur, ok := r.m.listings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	cur.Status = models.ListingStatusPublished
	cur.PublishedAt = &at
	cur.UpdatedAt = r.m.tick()
	r.m.listings[id] = cur
	return nil
}

func (r memListings) ListPublished(ctx context.Context) ([]*models.Listing, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	var out []*models.Listing
	for _, l := range r.m.listings {
		if l.Status == models.ListingStatusPublished {
			l.GuestPhotos = slices.Clone(l.GuestPhotos)
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].PublishedAt, out[j].PublishedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})
	return out, nil
}

/* ------------------------------------------------------------------
   Bookings
------------------------------------------------------------------ */

type memBookings struct{ m *MemStore }

func (r memBookings) Create(ctx context.Context, b *models.Booking) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	now := r.m.tick()
	b.CreatedAt, b.UpdatedAt = now, now
	r.m.bookings[b.ID] = *b
	return nil
}

func (r memBookings) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	b, ok := r.m.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r memBookings) LockByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r memBookings) MarkConfirmed(ctx context.Context, id uuid.UUID, stripeSessionID string, stripePaymentIntentID *string) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	b, ok := r.m.bookings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	b.Status = models.BookingStatusConfirmed
	b.StripeSessionID = &stripeSessionID
	b.StripePaymentIntentID = stripePaymentIntentID
	b.UpdatedAt = r.m.tick()
	r.m.bookings[id] = b
	return nil
}

/* ------------------------------------------------------------------
   Users, profiles, events
------------------------------------------------------------------ */

type memUsers struct{ m *MemStore }

func (r memUsers) Create(ctx context.Context, u *models.User) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	for _, existing := range r.m.users {
		if existing.Email == u.Email {
			return uniqueViolation(repositories.ConstraintUsersEmail)
		}
	}
	u.CreatedAt = r.m.tick()
	r.m.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

type memProfiles struct{ m *MemStore }

func (r memProfiles) Create(ctx context.Context, p *models.FreelancerProfile) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	for _, existing := range r.m.profiles {
		if existing.UserID == p.UserID {
			return uniqueViolation(repositories.ConstraintProfilesUser)
		}
	}
	p.CreatedAt = r.m.tick()
	r.m.profiles[p.ID] = *p
	return nil
}

func (r memProfiles) GetByID(ctx context.Context, id uuid.UUID) (*models.FreelancerProfile, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	p, ok := r.m.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProfiles) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.FreelancerProfile, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	for _, p := range r.m.profiles {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, nil
}

type memEvents struct{ m *MemStore }

func (r memEvents) Create(ctx context.Context, e *models.EventLog) error {
	if err := r.m.lock(); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	e.CreatedAt = r.m.tick()
	r.m.events = append(r.m.events, *e)
	return nil
}

func (r memEvents) ListByEntity(ctx context.Context, entityType models.EventEntityType, entityID uuid.UUID) ([]*models.EventLog, error) {
	if err := r.m.lock(); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	var out []*models.EventLog
	for _, e := range r.m.events {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, &e)
		}
	}
	return out, nil
}
