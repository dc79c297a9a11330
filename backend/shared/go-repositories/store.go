package repositories

import "context"

// Store is the injected storage handle. Every operation that writes more
// than one record goes through RunInTx so paired writes land together.
type Store interface {
	Properties() PropertyRepository
	Projects() ProjectRepository
	Applications() ApplicationRepository
	Assignments() AssignmentRepository
	Listings() ListingRepository
	Bookings() BookingRepository
	Users() UserRepository
	FreelancerProfiles() FreelancerProfileRepository
	EventLogs() EventLogRepository

	// RunInTx runs fn against a Store bound to one transaction. It commits
	// when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(tx Store) error) error
}

type pgStore struct {
	db DB

	properties   PropertyRepository
	projects     ProjectRepository
	applications ApplicationRepository
	assignments  AssignmentRepository
	listings     ListingRepository
	bookings     BookingRepository
	users        UserRepository
	profiles     FreelancerProfileRepository
	eventLogs    EventLogRepository
}

// NewStore builds the repository set over a pool or transaction.
func NewStore(db DB) Store {
	return &pgStore{
		db:           db,
		properties:   NewPropertyRepository(db),
		projects:     NewProjectRepository(db),
		applications: NewApplicationRepository(db),
		assignments:  NewAssignmentRepository(db),
		listings:     NewListingRepository(db),
		bookings:     NewBookingRepository(db),
		users:        NewUserRepository(db),
		profiles:     NewFreelancerProfileRepository(db),
		eventLogs:    NewEventLogRepository(db),
	}
}

func (s *pgStore) Properties() PropertyRepository                  { return s.properties }
func (s *pgStore) Projects() ProjectRepository                     { return s.projects }
func (s *pgStore) Applications() ApplicationRepository             { return s.applications }
func (s *pgStore) Assignments() AssignmentRepository               { return s.assignments }
func (s *pgStore) Listings() ListingRepository                     { return s.listings }
func (s *pgStore) Bookings() BookingRepository                     { return s.bookings }
func (s *pgStore) Users() UserRepository                           { return s.users }
func (s *pgStore) FreelancerProfiles() FreelancerProfileRepository { return s.profiles }
func (s *pgStore) EventLogs() EventLogRepository                   { return s.eventLogs }

func (s *pgStore) RunInTx(ctx context.Context, fn func(tx Store) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(NewStore(tx))
	return err
}
