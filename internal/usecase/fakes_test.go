package usecase

import (
	"context"
	"sync"
	"time"

	"uplift-backend/internal/domain/entity"
	"uplift-backend/internal/domain/repository"
	"uplift-backend/internal/policy"
	"uplift-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/gorm"
)

func newTestLogger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func slotKey(doctorID uuid.UUID, date time.Time, tod string) string {
	return doctorID.String() + "|" + policy.FormatDate(date) + "|" + tod
}

// memoryLedger is a SlotLedger with the same atomic guarantees as the unique indexes
// on slot and payment order.
type memoryLedger struct {
	mu           sync.Mutex
	byID         map[uuid.UUID]*entity.Appointment
	bySlot       map[string]uuid.UUID
	byOrder      map[string]uuid.UUID
	err          error
	insertCalled int
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		byID:    make(map[uuid.UUID]*entity.Appointment),
		bySlot:  make(map[string]uuid.UUID),
		byOrder: make(map[string]uuid.UUID),
	}
}

func (l *memoryLedger) FindConflict(ctx context.Context, slot repository.Slot) (*entity.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	id, ok := l.bySlot[slotKey(slot.DoctorID, slot.Date, slot.Time)]
	if !ok {
		return nil, nil
	}
	a := *l.byID[id]
	return &a, nil
}

func (l *memoryLedger) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	a, ok := l.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (l *memoryLedger) Insert(ctx context.Context, appointment *entity.Appointment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.insertCalled++
	if l.err != nil {
		return l.err
	}
	key := slotKey(appointment.DoctorID, appointment.AppointmentDate, appointment.AppointmentTime)
	if _, taken := l.bySlot[key]; taken {
		return repository.ErrDuplicateSlot
	}
	if _, used := l.byOrder[appointment.OrderID]; used && appointment.OrderID != "" {
		return repository.ErrDuplicateOrder
	}
	stored := *appointment
	l.byID[appointment.ID] = &stored
	l.bySlot[key] = appointment.ID
	if appointment.OrderID != "" {
		l.byOrder[appointment.OrderID] = appointment.ID
	}
	return nil
}

func (l *memoryLedger) Update(ctx context.Context, id uuid.UUID, date time.Time, timeOfDay string) (*entity.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	a, ok := l.byID[id]
	if !ok {
		return nil, nil
	}
	key := slotKey(a.DoctorID, date, timeOfDay)
	if owner, taken := l.bySlot[key]; taken && owner != id {
		return nil, repository.ErrDuplicateSlot
	}
	delete(l.bySlot, slotKey(a.DoctorID, a.AppointmentDate, a.AppointmentTime))
	a.AppointmentDate = date
	a.AppointmentTime = timeOfDay
	l.bySlot[key] = id
	copied := *a
	return &copied, nil
}

func (l *memoryLedger) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	a, ok := l.byID[id]
	if !ok {
		return false, nil
	}
	delete(l.bySlot, slotKey(a.DoctorID, a.AppointmentDate, a.AppointmentTime))
	delete(l.byOrder, a.OrderID)
	delete(l.byID, id)
	return true, nil
}

func (l *memoryLedger) list(match func(*entity.Appointment) bool) ([]entity.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	var out []entity.Appointment
	for _, a := range l.byID {
		if match(a) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (l *memoryLedger) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Appointment, error) {
	return l.list(func(a *entity.Appointment) bool { return a.PatientID == userID })
}

func (l *memoryLedger) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	return l.list(func(a *entity.Appointment) bool { return a.DoctorID == doctorID })
}

func (l *memoryLedger) ListAll(ctx context.Context) ([]entity.Appointment, error) {
	return l.list(func(*entity.Appointment) bool { return true })
}

func (l *memoryLedger) DeleteElapsed(ctx context.Context, day time.Time, timeOfDay string) ([]uuid.UUID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	var ids []uuid.UUID
	for id, a := range l.byID {
		if a.AppointmentDate.Before(day) || (a.AppointmentDate.Equal(day) && a.AppointmentTime < timeOfDay) {
			ids = append(ids, id)
			delete(l.bySlot, slotKey(a.DoctorID, a.AppointmentDate, a.AppointmentTime))
			delete(l.byOrder, a.OrderID)
			delete(l.byID, id)
		}
	}
	return ids, nil
}

func (l *memoryLedger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byID)
}

type memoryDirectory struct {
	mu      sync.Mutex
	doctors map[uuid.UUID]*entity.DoctorProfile
}

func newMemoryDirectory(profiles ...*entity.DoctorProfile) *memoryDirectory {
	d := &memoryDirectory{doctors: make(map[uuid.UUID]*entity.DoctorProfile)}
	for _, p := range profiles {
		d.doctors[p.UserID] = p
	}
	return d
}

func (d *memoryDirectory) GetDoctor(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.doctors[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (d *memoryDirectory) ListApproved(ctx context.Context) ([]entity.DoctorProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []entity.DoctorProfile
	for _, p := range d.doctors {
		if p.IsApproved() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (d *memoryDirectory) ListAll(ctx context.Context) ([]entity.DoctorProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []entity.DoctorProfile
	for _, p := range d.doctors {
		out = append(out, *p)
	}
	return out, nil
}

func (d *memoryDirectory) Update(ctx context.Context, id uuid.UUID, patch repository.DoctorUpdate) (*entity.DoctorProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.doctors[id]
	if !ok {
		return nil, nil
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Availability != nil {
		p.Availability = *patch.Availability
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	copied := *p
	return &copied, nil
}

type fakeGateway struct {
	valid    bool
	order    *entity.PaymentOrder
	err      error
	requests []entity.OrderRequest

	mu       sync.Mutex
	paid     map[string]*entity.PaymentOrder
	fetchErr error
}

// pay registers an order as known to the gateway so FetchOrder returns it.
func (g *fakeGateway) pay(order *entity.PaymentOrder) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.paid == nil {
		g.paid = make(map[string]*entity.PaymentOrder)
	}
	g.paid[order.ID] = order
}

func (g *fakeGateway) FetchOrder(ctx context.Context, orderID string) (*entity.PaymentOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return g.paid[orderID], nil
}

func (g *fakeGateway) CreateOrder(ctx context.Context, req entity.OrderRequest) (*entity.PaymentOrder, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	if g.order != nil {
		return g.order, nil
	}
	return &entity.PaymentOrder{ID: "order_test", Amount: req.Amount, Currency: req.Currency, Receipt: req.Receipt, Status: "created"}, nil
}

func (g *fakeGateway) VerifySignature(evidence entity.PaymentEvidence) bool {
	return g.valid
}

func (g *fakeGateway) KeyID() string {
	return "rzp_test_key"
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []service.BookingNotice
}

func (n *recordingNotifier) NotifyBooked(notice service.BookingNotice) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return true
}

type fakeHolder struct {
	holdErr  error
	expires  time.Time
	held     []repository.Slot
	released []repository.Slot
}

func (h *fakeHolder) Hold(ctx context.Context, slot repository.Slot, owner uuid.UUID) (time.Time, error) {
	if h.holdErr != nil {
		return time.Time{}, h.holdErr
	}
	h.held = append(h.held, slot)
	return h.expires, nil
}

func (h *fakeHolder) Release(ctx context.Context, slot repository.Slot, owner uuid.UUID) error {
	h.released = append(h.released, slot)
	return nil
}

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAudit) record(action string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}

func (a *recordingAudit) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return a.record(action)
}

func (a *recordingAudit) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return a.record(action)
}

func (a *recordingAudit) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return a.record(action)
}

func repositoryPricePatch(price decimal.Decimal) repository.DoctorUpdate {
	return repository.DoctorUpdate{Price: &price}
}

type memorySessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *memorySessionRepo) Create(db *gorm.DB, session *entity.Session) error {
	stored := *session
	r.sessions[session.ID] = &stored
	return nil
}

func (r *memorySessionRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *memorySessionRepo) FindUpcoming(db *gorm.DB, from time.Time) ([]entity.Session, error) {
	var out []entity.Session
	for _, s := range r.sessions {
		if !s.SessionDate.Before(from) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memorySessionRepo) Update(db *gorm.DB, session *entity.Session) error {
	stored := *session
	r.sessions[session.ID] = &stored
	return nil
}

func (r *memorySessionRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.sessions[id]; !ok {
		return 0, nil
	}
	delete(r.sessions, id)
	return 1, nil
}

type memoryArticleRepo struct {
	articles map[uuid.UUID]*entity.Article
	locked   []uuid.UUID
}

func newMemoryArticleRepo() *memoryArticleRepo {
	return &memoryArticleRepo{articles: make(map[uuid.UUID]*entity.Article)}
}

func (r *memoryArticleRepo) Create(db *gorm.DB, article *entity.Article) error {
	stored := *article
	r.articles[article.ID] = &stored
	return nil
}

func (r *memoryArticleRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	copied.Reviews = append([]entity.ArticleReview(nil), a.Reviews...)
	return &copied, nil
}

func (r *memoryArticleRepo) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Article, error) {
	r.locked = append(r.locked, id)
	a, ok := r.articles[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	copied.Reviews = nil
	return &copied, nil
}

func (r *memoryArticleRepo) FindAll(db *gorm.DB) ([]entity.Article, error) {
	var out []entity.Article
	for _, a := range r.articles {
		out = append(out, *a)
	}
	return out, nil
}

func (r *memoryArticleRepo) FindByAuthorID(db *gorm.DB, authorID uuid.UUID) ([]entity.Article, error) {
	var out []entity.Article
	for _, a := range r.articles {
		if a.AuthorID == authorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memoryArticleRepo) Update(db *gorm.DB, article *entity.Article) error {
	stored := *article
	r.articles[article.ID] = &stored
	return nil
}

func (r *memoryArticleRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.articles[id]; !ok {
		return 0, nil
	}
	delete(r.articles, id)
	return 1, nil
}

func (r *memoryArticleRepo) AddReview(db *gorm.DB, review *entity.ArticleReview) error {
	a := r.articles[review.ArticleID]
	review.ID = int64(len(a.Reviews) + 1)
	a.Reviews = append(a.Reviews, *review)
	return nil
}

func (r *memoryArticleRepo) AverageRating(db *gorm.DB, articleID uuid.UUID) (decimal.Decimal, error) {
	a := r.articles[articleID]
	if len(a.Reviews) == 0 {
		return decimal.Zero, nil
	}
	sum := 0
	for _, review := range a.Reviews {
		sum += review.Rating
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(a.Reviews)))).Round(2), nil
}

func (r *memoryArticleRepo) UpdateAverageRating(db *gorm.DB, articleID uuid.UUID, rating decimal.Decimal) error {
	r.articles[articleID].AverageRating = rating
	return nil
}

type memoryUserRepo struct {
	users []entity.User
}

func (r *memoryUserRepo) Create(db *gorm.DB, user *entity.User) error {
	r.users = append(r.users, *user)
	return nil
}

func (r *memoryUserRepo) find(match func(entity.User) bool) (*entity.User, error) {
	for _, u := range r.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *memoryUserRepo) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r *memoryUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r *memoryUserRepo) FindAll(db *gorm.DB) ([]entity.User, error) {
	return r.users, nil
}
