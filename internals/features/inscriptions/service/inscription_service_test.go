package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academia_backend/internals/features/inscriptions/model"
)

/* =========================================================
   Fakes. The capacity fake mirrors the conditional-UPDATE
   semantics of the real ledger: check and mutate under one
   lock, so concurrent claims interleave like rows in
   Postgres.
========================================================= */

type fakeCapacity struct {
	mu       sync.Mutex
	capacity map[uuid.UUID]int
	enrolled map[uuid.UUID]int
	active   map[uuid.UUID]bool
}

func newFakeCapacity() *fakeCapacity {
	return &fakeCapacity{
		capacity: map[uuid.UUID]int{},
		enrolled: map[uuid.UUID]int{},
		active:   map[uuid.UUID]bool{},
	}
}

func (f *fakeCapacity) TryReserveSeat(_ context.Context, classID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.active[classID] {
		return false, nil
	}
	if f.enrolled[classID] >= f.capacity[classID] {
		return false, nil
	}
	f.enrolled[classID]++
	return true, nil
}

func (f *fakeCapacity) ReleaseSeat(_ context.Context, classID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enrolled[classID] <= 0 {
		return false, nil
	}
	f.enrolled[classID]--
	return true, nil
}

func (f *fakeCapacity) count(classID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enrolled[classID]
}

type fakeStore struct {
	mu           sync.Mutex
	classes      map[uuid.UUID]*ClassSnapshot
	users        map[uuid.UUID]bool
	inscriptions map[uuid.UUID]model.InscriptionModel
	failCreate   bool
	hideActive   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		classes:      map[uuid.UUID]*ClassSnapshot{},
		users:        map[uuid.UUID]bool{},
		inscriptions: map[uuid.UUID]model.InscriptionModel{},
	}
}

func (f *fakeStore) FindClass(_ context.Context, classID uuid.UUID) (*ClassSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classes[classID]
	if !ok {
		return nil, nil
	}
	snapshot := *c
	return &snapshot, nil
}

func (f *fakeStore) UserExists(_ context.Context, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userID], nil
}

func (f *fakeStore) HasActiveInscription(_ context.Context, studentID, classID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideActive {
		return false, nil
	}
	return f.hasActiveLocked(studentID, classID), nil
}

func (f *fakeStore) hasActiveLocked(studentID, classID uuid.UUID) bool {
	for _, ins := range f.inscriptions {
		if ins.InscriptionStudentUserID == studentID &&
			ins.InscriptionClassID == classID &&
			ins.InscriptionStatus.Active() {
			return true
		}
	}
	return false
}

func (f *fakeStore) Create(_ context.Context, ins *model.InscriptionModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("storage unavailable")
	}
	if ins.InscriptionStatus.Active() &&
		f.hasActiveLocked(ins.InscriptionStudentUserID, ins.InscriptionClassID) {
		return ErrDuplicateActive
	}
	f.inscriptions[ins.InscriptionID] = *ins
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*model.InscriptionModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ins, ok := f.inscriptions[id]
	if !ok {
		return nil, nil
	}
	out := ins
	return &out, nil
}

func (f *fakeStore) Update(_ context.Context, ins *model.InscriptionModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.inscriptions[ins.InscriptionID]; !ok {
		return errors.New("not found")
	}
	f.inscriptions[ins.InscriptionID] = *ins
	return nil
}

type fakeCredits struct {
	mu      sync.Mutex
	credits map[uuid.UUID]int
	refunds int
}

func newFakeCredits() *fakeCredits {
	return &fakeCredits{credits: map[uuid.UUID]int{}}
}

func (f *fakeCredits) UseCredit(_ context.Context, membershipID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.credits[membershipID]
	if !ok || c <= 0 {
		return false, nil
	}
	f.credits[membershipID]--
	return true, nil
}

func (f *fakeCredits) RefundCredit(_ context.Context, membershipID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credits[membershipID]++
	f.refunds++
	return nil
}

type fakeLedger struct {
	mu           sync.Mutex
	created      []PendingPaymentInput
	fail         bool
	completedFor map[uuid.UUID]bool
	refundFlags  []uuid.UUID
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{completedFor: map[uuid.UUID]bool{}}
}

func (f *fakeLedger) CreatePendingInscriptionPayment(_ context.Context, in PendingPaymentInput) (*CreatedPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fiber.NewError(fiber.StatusBadGateway, "gateway down")
	}
	f.created = append(f.created, in)
	url := fmt.Sprintf("https://pay.example/%s", in.InscriptionID)
	return &CreatedPayment{PaymentID: uuid.New(), CheckoutURL: &url}, nil
}

func (f *fakeLedger) MarkRefundDue(_ context.Context, inscriptionID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.completedFor[inscriptionID] {
		return false, nil
	}
	f.refundFlags = append(f.refundFlags, inscriptionID)
	return true, nil
}

/* ========================================================= */

type fixture struct {
	svc      *InscriptionService
	store    *fakeStore
	capacity *fakeCapacity
	credits  *fakeCredits
	ledger   *fakeLedger

	adminID   uuid.UUID
	studentID uuid.UUID
	classID   uuid.UUID
	academyID uuid.UUID
}

func newFixture(t *testing.T, price float64, capacity int) *fixture {
	t.Helper()

	f := &fixture{
		store:     newFakeStore(),
		capacity:  newFakeCapacity(),
		credits:   newFakeCredits(),
		ledger:    newFakeLedger(),
		adminID:   uuid.New(),
		studentID: uuid.New(),
		classID:   uuid.New(),
		academyID: uuid.New(),
	}
	f.store.users[f.adminID] = true
	f.store.users[f.studentID] = true
	f.store.classes[f.classID] = &ClassSnapshot{
		ClassID:   f.classID,
		AcademyID: f.academyID,
		Price:     price,
		Currency:  "USD",
		IsActive:  true,
	}
	f.capacity.capacity[f.classID] = capacity
	f.capacity.active[f.classID] = true

	f.svc = NewInscriptionService(f.store, f.capacity, f.credits)
	f.svc.Payments = f.ledger
	return f
}

func (f *fixture) input(paymentType model.PaymentType) CreateInput {
	return CreateInput{
		AdminID:     f.adminID,
		StudentID:   f.studentID,
		ClassID:     f.classID,
		AcademyID:   f.academyID,
		PaymentType: paymentType,
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestCreateFreeClassReclassifiedAsComplimentary(t *testing.T) {
	f := newFixture(t, 0, 5)

	res, err := f.svc.Create(context.Background(), f.input(model.PaidPerClass))
	require.NoError(t, err)

	assert.Equal(t, model.PaidPerClass, res.RequestedPaymentType)
	assert.Equal(t, model.Complimentary, res.EffectivePaymentType)
	assert.Equal(t, model.InscriptionConfirmed, res.Inscription.InscriptionStatus)
	assert.Equal(t, model.Complimentary, res.Inscription.InscriptionPaymentType)
	assert.Empty(t, f.ledger.created, "a free class must not open a payment")
	assert.Equal(t, 1, f.capacity.count(f.classID))
}

func TestCreatePaidClassOpensPendingPayment(t *testing.T) {
	f := newFixture(t, 20, 5)

	res, err := f.svc.Create(context.Background(), f.input(model.PaidPerClass))
	require.NoError(t, err)

	assert.Equal(t, model.InscriptionPendingPayment, res.Inscription.InscriptionStatus)
	require.NotNil(t, res.Inscription.InscriptionPaymentID)
	require.NotNil(t, res.CheckoutURL)

	require.Len(t, f.ledger.created, 1)
	assert.Equal(t, 20.0, f.ledger.created[0].Amount)
	assert.Equal(t, "USD", f.ledger.created[0].Currency)
	assert.Equal(t, res.Inscription.InscriptionID, f.ledger.created[0].InscriptionID)
}

func TestCreateManualAmountConfirmsDirectly(t *testing.T) {
	f := newFixture(t, 20, 5)

	amount := 15.0
	in := f.input(model.PaidPerClass)
	in.Amount = &amount

	res, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, model.InscriptionConfirmed, res.Inscription.InscriptionStatus)
	require.NotNil(t, res.Inscription.InscriptionAmountPaid)
	assert.Equal(t, 15.0, *res.Inscription.InscriptionAmountPaid)
	assert.Empty(t, f.ledger.created)
}

func TestCreateFullClassConflict(t *testing.T) {
	f := newFixture(t, 0, 1)
	f.capacity.enrolled[f.classID] = 1

	_, err := f.svc.Create(context.Background(), f.input(model.Complimentary))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))
	assert.Contains(t, err.Error(), "full")
	assert.Empty(t, f.store.inscriptions)
	assert.Equal(t, 1, f.capacity.count(f.classID))
}

func TestCreateInactiveClassRejected(t *testing.T) {
	f := newFixture(t, 0, 5)
	f.store.classes[f.classID].IsActive = false

	_, err := f.svc.Create(context.Background(), f.input(model.Complimentary))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))
	assert.Equal(t, 0, f.capacity.count(f.classID))
}

func TestCreateRejectsClassOutsideAcademy(t *testing.T) {
	f := newFixture(t, 20, 5)
	membershipID := uuid.New()
	f.credits.credits[membershipID] = 3

	in := f.input(model.Membership)
	in.AcademyID = uuid.New()
	in.MembershipID = &membershipID

	_, err := f.svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, statusOf(t, err))
	assert.Contains(t, err.Error(), "another academy")

	// Rejected before anything happened: no seat, no record, no charge.
	assert.Equal(t, 0, f.capacity.count(f.classID))
	assert.Empty(t, f.store.inscriptions)
	assert.Empty(t, f.ledger.created)
	assert.Equal(t, 3, f.credits.credits[membershipID])
}

func TestCreateWithoutScopeSkipsAcademyCheck(t *testing.T) {
	f := newFixture(t, 0, 5)

	in := f.input(model.Complimentary)
	in.AcademyID = uuid.Nil

	res, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, f.academyID, res.Inscription.InscriptionAcademyID)
}

func TestCreateDuplicateActiveConflictThenSucceedsAfterCancel(t *testing.T) {
	f := newFixture(t, 0, 5)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.input(model.Complimentary))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.input(model.Complimentary))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))
	assert.Contains(t, err.Error(), "already enrolled")
	assert.Equal(t, 1, f.capacity.count(f.classID))

	_, err = f.svc.AdminCancel(ctx, first.Inscription.InscriptionID, f.academyID, f.adminID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, f.capacity.count(f.classID))

	_, err = f.svc.Create(ctx, f.input(model.Complimentary))
	require.NoError(t, err)
	assert.Equal(t, 1, f.capacity.count(f.classID))
}

func TestCreateRollbackOnPersistFailure(t *testing.T) {
	f := newFixture(t, 0, 5)
	f.store.failCreate = true

	_, err := f.svc.Create(context.Background(), f.input(model.Complimentary))
	require.Error(t, err)
	assert.Equal(t, 0, f.capacity.count(f.classID), "the claimed seat must be given back")
	assert.Empty(t, f.store.inscriptions)
}

func TestCreateStorageUniquenessBackstop(t *testing.T) {
	f := newFixture(t, 0, 5)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.input(model.Complimentary))
	require.NoError(t, err)

	// Blind the application-level check so the duplicate reaches the
	// store, the way two racing requests would. The unique-violation
	// mapping must still surface a conflict and give the seat back.
	f.store.hideActive = true
	_, err = f.svc.Create(ctx, f.input(model.Complimentary))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))
	assert.Equal(t, 1, f.capacity.count(f.classID))
	assert.Len(t, f.store.inscriptions, 1)
}

func TestCreateMembershipRequiresReference(t *testing.T) {
	f := newFixture(t, 20, 5)

	_, err := f.svc.Create(context.Background(), f.input(model.Membership))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))
	assert.Equal(t, 0, f.capacity.count(f.classID), "seat must be released on abort")
}

func TestCreateMembershipWithoutCreditsReleasesSeat(t *testing.T) {
	f := newFixture(t, 20, 5)
	membershipID := uuid.New()
	f.credits.credits[membershipID] = 0

	in := f.input(model.Membership)
	in.MembershipID = &membershipID

	_, err := f.svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))
	assert.Equal(t, 0, f.capacity.count(f.classID))
}

func TestCreateMembershipConsumesCredit(t *testing.T) {
	f := newFixture(t, 20, 5)
	membershipID := uuid.New()
	f.credits.credits[membershipID] = 3

	in := f.input(model.Membership)
	in.MembershipID = &membershipID

	res, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, model.InscriptionConfirmed, res.Inscription.InscriptionStatus)
	assert.Equal(t, 2, f.credits.credits[membershipID])
	require.NotNil(t, res.Inscription.InscriptionMembershipID)
}

func TestCreateUnknownPaymentTypeReleasesSeat(t *testing.T) {
	f := newFixture(t, 20, 5)

	_, err := f.svc.Create(context.Background(), f.input(model.PaymentType("BARTER")))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))
	assert.Equal(t, 0, f.capacity.count(f.classID))
	assert.Empty(t, f.store.inscriptions)
}

func TestCreateGatewayFailureReleasesSeat(t *testing.T) {
	f := newFixture(t, 20, 5)
	f.ledger.fail = true

	_, err := f.svc.Create(context.Background(), f.input(model.PaidPerClass))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadGateway, statusOf(t, err))
	assert.Equal(t, 0, f.capacity.count(f.classID))
	assert.Empty(t, f.store.inscriptions)
}

func TestAdminCancelIsNotRepeatable(t *testing.T) {
	f := newFixture(t, 0, 5)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.input(model.Complimentary))
	require.NoError(t, err)

	reason := "schedule clash"
	cancelled, err := f.svc.AdminCancel(ctx, res.Inscription.InscriptionID, f.academyID, f.adminID, &reason)
	require.NoError(t, err)
	assert.Equal(t, model.InscriptionCancelledByAdmin, cancelled.InscriptionStatus)
	require.NotNil(t, cancelled.InscriptionAdminNotes)
	assert.Contains(t, *cancelled.InscriptionAdminNotes, "schedule clash")
	assert.Equal(t, 0, f.capacity.count(f.classID))

	_, err = f.svc.AdminCancel(ctx, res.Inscription.InscriptionID, f.academyID, f.adminID, nil)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))
	assert.Equal(t, 0, f.capacity.count(f.classID), "a repeated cancel must not release twice")
}

func TestAdminCancelFlagsRefundForCompletedPayment(t *testing.T) {
	f := newFixture(t, 20, 5)
	ctx := context.Background()

	amount := 20.0
	in := f.input(model.PaidPerClass)
	in.Amount = &amount

	res, err := f.svc.Create(ctx, in)
	require.NoError(t, err)
	f.ledger.completedFor[res.Inscription.InscriptionID] = true

	_, err = f.svc.AdminCancel(ctx, res.Inscription.InscriptionID, f.academyID, f.adminID, nil)
	require.NoError(t, err)
	require.Len(t, f.ledger.refundFlags, 1)
	assert.Equal(t, res.Inscription.InscriptionID, f.ledger.refundFlags[0])
}

func TestAdminCancelRefundsMembershipCredit(t *testing.T) {
	f := newFixture(t, 20, 5)
	ctx := context.Background()
	membershipID := uuid.New()
	f.credits.credits[membershipID] = 1

	in := f.input(model.Membership)
	in.MembershipID = &membershipID

	res, err := f.svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 0, f.credits.credits[membershipID])

	_, err = f.svc.AdminCancel(ctx, res.Inscription.InscriptionID, f.academyID, f.adminID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.credits.credits[membershipID])
	assert.Equal(t, 1, f.credits.refunds)
}

func TestAdminCancelScopedToAcademy(t *testing.T) {
	f := newFixture(t, 0, 5)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.input(model.Complimentary))
	require.NoError(t, err)

	_, err = f.svc.AdminCancel(ctx, res.Inscription.InscriptionID, uuid.New(), f.adminID, nil)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))

	// Nothing changed for the other academy's admin.
	kept, err := f.store.FindByID(ctx, res.Inscription.InscriptionID)
	require.NoError(t, err)
	assert.Equal(t, model.InscriptionConfirmed, kept.InscriptionStatus)
	assert.Equal(t, 1, f.capacity.count(f.classID))
}

func TestUpdateAttendanceScopedToAcademy(t *testing.T) {
	f := newFixture(t, 0, 5)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.input(model.Complimentary))
	require.NoError(t, err)

	_, err = f.svc.UpdateAttendance(ctx, res.Inscription.InscriptionID, uuid.New(), model.InscriptionAttended)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))

	kept, err := f.store.FindByID(ctx, res.Inscription.InscriptionID)
	require.NoError(t, err)
	assert.Equal(t, model.InscriptionConfirmed, kept.InscriptionStatus)
}

func TestConfirmPaymentOnlyFromPendingPayment(t *testing.T) {
	f := newFixture(t, 20, 5)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.input(model.PaidPerClass))
	require.NoError(t, err)
	require.Equal(t, model.InscriptionPendingPayment, res.Inscription.InscriptionStatus)

	paymentID := *res.Inscription.InscriptionPaymentID
	confirmed, err := f.svc.ConfirmPaymentAndUpdateStatus(ctx, res.Inscription.InscriptionID, paymentID)
	require.NoError(t, err)
	assert.Equal(t, model.InscriptionConfirmed, confirmed.InscriptionStatus)

	// Gateway redelivery: the second confirm must be a no-op.
	again, err := f.svc.ConfirmPaymentAndUpdateStatus(ctx, res.Inscription.InscriptionID, paymentID)
	require.NoError(t, err)
	assert.Equal(t, model.InscriptionConfirmed, again.InscriptionStatus)
	assert.Equal(t, 1, f.capacity.count(f.classID))
}

func TestConfirmPaymentUnknownInscription(t *testing.T) {
	f := newFixture(t, 20, 5)

	_, err := f.svc.ConfirmPaymentAndUpdateStatus(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))
}

func TestAttendanceTransitions(t *testing.T) {
	f := newFixture(t, 0, 5)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.input(model.Complimentary))
	require.NoError(t, err)
	id := res.Inscription.InscriptionID

	_, err = f.svc.UpdateAttendance(ctx, id, f.academyID, model.InscriptionCancelledByAdmin)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))

	updated, err := f.svc.UpdateAttendance(ctx, id, f.academyID, model.InscriptionAttended)
	require.NoError(t, err)
	assert.Equal(t, model.InscriptionAttended, updated.InscriptionStatus)

	_, err = f.svc.AdminCancel(ctx, id, f.academyID, f.adminID, nil)
	require.NoError(t, err)

	_, err = f.svc.UpdateAttendance(ctx, id, f.academyID, model.InscriptionNoShow)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))
}

func TestAttendanceBlockedWhilePaymentPending(t *testing.T) {
	f := newFixture(t, 20, 5)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.input(model.PaidPerClass))
	require.NoError(t, err)

	_, err = f.svc.UpdateAttendance(ctx, res.Inscription.InscriptionID, f.academyID, model.InscriptionAttended)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))
}

// Seat accounting under contention: K free seats, K+5 racers, exactly K
// winners and the counter never exceeds capacity.
func TestConcurrentCreatesRespectCapacity(t *testing.T) {
	const seats = 7
	f := newFixture(t, 0, seats)
	ctx := context.Background()

	racers := seats + 5
	var wg sync.WaitGroup
	results := make([]error, racers)

	for i := 0; i < racers; i++ {
		student := uuid.New()
		f.store.mu.Lock()
		f.store.users[student] = true
		f.store.mu.Unlock()

		wg.Add(1)
		go func(slot int, studentID uuid.UUID) {
			defer wg.Done()
			in := f.input(model.Complimentary)
			in.StudentID = studentID
			_, err := f.svc.Create(ctx, in)
			results[slot] = err
		}(i, student)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.Equal(t, fiber.StatusConflict, statusOf(t, err))
	}
	assert.Equal(t, seats, wins)
	assert.Equal(t, seats, f.capacity.count(f.classID))
	assert.Len(t, f.store.inscriptions, seats)
}

// Double release must not drive the counter negative.
func TestReleaseAtZeroIsNoOp(t *testing.T) {
	f := newFixture(t, 0, 3)

	ok, err := f.capacity.ReleaseSeat(context.Background(), f.classID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, f.capacity.count(f.classID))
}
