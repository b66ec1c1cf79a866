package tests

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
	"bikerental/internal/service"
)

// ──────────────────────────────────────────────
// MOCK BIKE REPOSITORY
// ──────────────────────────────────────────────

// MockBikeRepository is a mock implementation of BikeRepository.
type MockBikeRepository struct {
	mu    sync.RWMutex
	bikes map[string]*domain.Bike

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockBikeRepository creates a new mock bike repository.
func NewMockBikeRepository() *MockBikeRepository {
	return &MockBikeRepository{
		bikes: make(map[string]*domain.Bike),
	}
}

// AddBike adds a bike to the mock repository.
func (m *MockBikeRepository) AddBike(bike *domain.Bike) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bikes[bike.ID] = bike
}

// GetBike returns a bike for test assertions.
func (m *MockBikeRepository) GetBike(id string) *domain.Bike {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bikes[id]
}

func (m *MockBikeRepository) Create(ctx context.Context, bike *domain.Bike) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bikes[bike.ID] = bike
	return nil
}

func (m *MockBikeRepository) GetByID(ctx context.Context, id string) (*domain.Bike, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bike, ok := m.bikes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *bike
	return &copy, nil
}

func (m *MockBikeRepository) GetBySerial(ctx context.Context, serial string) (*domain.Bike, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bikes {
		if b.SerialNumber == serial {
			copy := *b
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockBikeRepository) GetAll(ctx context.Context) ([]*domain.Bike, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Bike, 0, len(m.bikes))
	for _, b := range m.bikes {
		copy := *b
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockBikeRepository) GetAvailable(ctx context.Context) ([]*domain.Bike, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Bike, 0)
	for _, b := range m.bikes {
		if b.Status == domain.BikeStatusAvailable {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBikeRepository) Search(ctx context.Context, filter repository.BikeFilter) ([]*domain.Bike, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	query := strings.ToLower(filter.Query)
	result := make([]*domain.Bike, 0)
	for _, b := range m.bikes {
		if query != "" &&
			!strings.Contains(strings.ToLower(b.Model), query) &&
			!strings.Contains(strings.ToLower(b.SerialNumber), query) {
			continue
		}
		if filter.Type != "" && b.Type != filter.Type {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		copy := *b
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockBikeRepository) Update(ctx context.Context, bike *domain.Bike) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bikes[bike.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *bike
	m.bikes[bike.ID] = &copy
	return nil
}

func (m *MockBikeRepository) UpdateStatus(ctx context.Context, id string, status domain.BikeStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bike, ok := m.bikes[id]
	if !ok {
		return repository.ErrNotFound
	}
	bike.Status = status
	return nil
}

func (m *MockBikeRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bikes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.bikes, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK CLIENT REPOSITORY
// ──────────────────────────────────────────────

// MockClientRepository is a mock implementation of ClientRepository.
type MockClientRepository struct {
	mu      sync.RWMutex
	clients map[string]*domain.Client

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockClientRepository creates a new mock client repository.
func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{
		clients: make(map[string]*domain.Client),
	}
}

// AddClient adds a client to the mock repository.
func (m *MockClientRepository) AddClient(client *domain.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.ID] = client
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.ID] = client
	return nil
}

func (m *MockClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	client, ok := m.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *client
	return &copy, nil
}

func (m *MockClientRepository) GetAll(ctx context.Context) ([]*domain.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Client, 0, len(m.clients))
	for _, c := range m.clients {
		copy := *c
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockClientRepository) Search(ctx context.Context, query string) ([]*domain.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	query = strings.ToLower(query)
	result := make([]*domain.Client, 0)
	for _, c := range m.clients {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.Phone), query) ||
			strings.Contains(strings.ToLower(c.Email), query) {
			copy := *c
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockClientRepository) Update(ctx context.Context, client *domain.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[client.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *client
	m.clients[client.ID] = &copy
	return nil
}

func (m *MockClientRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.clients, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK RENTAL REPOSITORY
// ──────────────────────────────────────────────

// MockRentalRepository is a mock implementation of RentalRepository.
type MockRentalRepository struct {
	mu      sync.RWMutex
	rentals map[string]*domain.Rental

	// Counters for verification
	CreateCallCount     int32
	UpdateCallCount     int32
	AddPenaltyCallCount int32

	// Error injection
	CreateError     error
	UpdateError     error
	AddPenaltyError error
}

// NewMockRentalRepository creates a new mock rental repository.
func NewMockRentalRepository() *MockRentalRepository {
	return &MockRentalRepository{
		rentals: make(map[string]*domain.Rental),
	}
}

// AddRental adds a rental to the mock repository.
func (m *MockRentalRepository) AddRental(rental *domain.Rental) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rentals[rental.ID] = rental
}

// GetRental returns a rental for test assertions.
func (m *MockRentalRepository) GetRental(id string) *domain.Rental {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rentals[id]
}

// CountRentals returns the number of stored rentals.
func (m *MockRentalRepository) CountRentals() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rentals)
}

func (m *MockRentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *rental
	m.rentals[rental.ID] = &copy
	return nil
}

func (m *MockRentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rental, ok := m.rentals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *rental
	return &copy, nil
}

func (m *MockRentalRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Rental, error) {
	return m.GetByID(ctx, id)
}

func (m *MockRentalRepository) GetActive(ctx context.Context) ([]*domain.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Rental, 0)
	for _, r := range m.rentals {
		if r.Status == domain.RentalStatusActive {
			copy := *r
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockRentalRepository) GetHistoryByClientID(ctx context.Context, clientID string) ([]*domain.RentalHistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.RentalHistoryEntry, 0)
	for _, r := range m.rentals {
		if r.ClientID == clientID {
			result = append(result, &domain.RentalHistoryEntry{Rental: *r})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.After(result[j].StartTime)
	})
	return result, nil
}

func (m *MockRentalRepository) Update(ctx context.Context, rental *domain.Rental) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rentals[rental.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *rental
	m.rentals[rental.ID] = &copy
	return nil
}

func (m *MockRentalRepository) AddPenalty(ctx context.Context, id string, amount float64, billedIntervals int) error {
	atomic.AddInt32(&m.AddPenaltyCallCount, 1)
	if m.AddPenaltyError != nil {
		return m.AddPenaltyError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rental, ok := m.rentals[id]
	if !ok || rental.Status != domain.RentalStatusActive || rental.BilledIntervals >= billedIntervals {
		return repository.ErrNotFound
	}
	rental.PenaltyCost += amount
	rental.TotalCost += amount
	rental.BilledIntervals = billedIntervals
	return nil
}

func (m *MockRentalRepository) IncomeForDay(ctx context.Context, day time.Time) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	y, mo, d := day.Date()
	var total float64
	for _, r := range m.rentals {
		if r.Status != domain.RentalStatusCompleted || r.EndTime.IsZero() {
			continue
		}
		ry, rmo, rd := r.EndTime.Date()
		if ry == y && rmo == mo && rd == d {
			total += r.TotalCost
		}
	}
	return total, nil
}

func (m *MockRentalRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rentals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rentals, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK INVOICE REPOSITORY
// ──────────────────────────────────────────────

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockInvoiceRepository creates a new mock invoice repository.
func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices: make(map[string]*domain.Invoice),
	}
}

// CountInvoices returns the number of stored invoices.
func (m *MockInvoiceRepository) CountInvoices() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.invoices)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *invoice
	m.invoices[invoice.ID] = &copy
	return nil
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	invoice, ok := m.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *invoice
	return &copy, nil
}

func (m *MockInvoiceRepository) GetByRentalID(ctx context.Context, rentalID string) (*domain.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.invoices {
		if inv.RentalID == rentalID {
			copy := *inv
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	invoice, ok := m.invoices[id]
	if !ok {
		return repository.ErrNotFound
	}
	invoice.Status = status
	return nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

// CountPayments returns the number of stored payments.
func (m *MockPaymentRepository) CountPayments() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.IdempotencyKey != "" && p.IdempotencyKey == payment.IdempotencyKey {
			return repository.ErrDuplicate
		}
	}
	copy := *payment
	m.payments[payment.ID] = &copy
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *payment
	return &copy, nil
}

func (m *MockPaymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.IdempotencyKey == key {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockPaymentRepository) GetAll(ctx context.Context) ([]*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		copy := *p
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PaymentDate.After(result[j].PaymentDate)
	})
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK UNIT OF WORK
// ──────────────────────────────────────────────

// MockUnitOfWork runs the unit-of-work function against shared mock
// repositories. There is no real transaction; tests that need rollback
// semantics inject errors and assert on untouched state themselves.
type MockUnitOfWork struct {
	Repos repository.Repos

	// Counters for verification
	DoCallCount int32

	// Error injection: returned before fn runs.
	DoError error
}

// NewMockUnitOfWork creates a unit of work over the given mock repositories.
func NewMockUnitOfWork(
	bikes *MockBikeRepository,
	clients *MockClientRepository,
	rentals *MockRentalRepository,
	invoices *MockInvoiceRepository,
	payments *MockPaymentRepository,
) *MockUnitOfWork {
	return &MockUnitOfWork{
		Repos: repository.Repos{
			Bikes:    bikes,
			Clients:  clients,
			Rentals:  rentals,
			Invoices: invoices,
			Payments: payments,
		},
	}
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(r repository.Repos) error) error {
	atomic.AddInt32(&m.DoCallCount, 1)
	if m.DoError != nil {
		return m.DoError
	}
	return fn(m.Repos)
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// DenyAll makes every acquisition fail as already-held.
	DenyAll bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireRentalLock(ctx context.Context, rentalID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DenyAll || m.locks[rentalID] {
		return false, nil
	}
	m.locks[rentalID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseRentalLock(ctx context.Context, rentalID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, rentalID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK STATS CACHE
// ──────────────────────────────────────────────

// MockStatsCache is a mock implementation of StatsCacheInterface.
type MockStatsCache struct {
	mu    sync.Mutex
	stats *domain.DashboardStats

	// Counters for verification
	GetCallCount int32
	SetCallCount int32
}

// NewMockStatsCache creates a new mock stats cache.
func NewMockStatsCache() *MockStatsCache {
	return &MockStatsCache{}
}

func (m *MockStatsCache) Get(ctx context.Context) (*domain.DashboardStats, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats == nil {
		return nil, nil
	}
	copy := *m.stats
	return &copy, nil
}

func (m *MockStatsCache) Set(ctx context.Context, stats *domain.DashboardStats) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *stats
	m.stats = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK REPORT REPOSITORY
// ──────────────────────────────────────────────

// MockReportRepository is a mock implementation of ReportRepository. Each
// field holds the rows the matching query returns.
type MockReportRepository struct {
	PeriodRows     []*domain.RentalPeriodRow
	UsageRows      []*domain.BikeUsageRow
	IncomeRows     []*domain.DailyIncomeRow
	SpendRows      []*domain.ClientSpendRow
	PopularityRows []*domain.TypePopularityRow

	// Error injection
	QueryError error
}

// NewMockReportRepository creates a new mock report repository.
func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{}
}

func (m *MockReportRepository) RentalsInPeriod(ctx context.Context, start, end time.Time) ([]*domain.RentalPeriodRow, error) {
	return m.PeriodRows, m.QueryError
}

func (m *MockReportRepository) BikeUsage(ctx context.Context, start, end time.Time) ([]*domain.BikeUsageRow, error) {
	return m.UsageRows, m.QueryError
}

func (m *MockReportRepository) IncomeByDay(ctx context.Context, start, end time.Time) ([]*domain.DailyIncomeRow, error) {
	return m.IncomeRows, m.QueryError
}

func (m *MockReportRepository) ClientSpend(ctx context.Context, start, end time.Time) ([]*domain.ClientSpendRow, error) {
	return m.SpendRows, m.QueryError
}

func (m *MockReportRepository) TypePopularity(ctx context.Context, start, end time.Time) ([]*domain.TypePopularityRow, error) {
	return m.PopularityRows, m.QueryError
}

// ──────────────────────────────────────────────
// MOCK NOTIFIER
// ──────────────────────────────────────────────

// MockNotifier records delivered notifications.
type MockNotifier struct {
	mu            sync.Mutex
	notifications []service.Notification

	// Error injection
	NotifyError error
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(ctx context.Context, n service.Notification) error {
	if m.NotifyError != nil {
		return m.NotifyError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
	return nil
}

// Notifications returns a snapshot of delivered notifications.
func (m *MockNotifier) Notifications() []service.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]service.Notification, len(m.notifications))
	copy(result, m.notifications)
	return result
}

// CountByType counts delivered notifications of one type.
func (m *MockNotifier) CountByType(t service.NotificationType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, n := range m.notifications {
		if n.Type == t {
			count++
		}
	}
	return count
}
