package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	insModel "academia_backend/internals/features/inscriptions/model"
	insService "academia_backend/internals/features/inscriptions/service"
	"academia_backend/internals/features/reservations/model"
	"academia_backend/internals/mailer"
)

type fakeReservationStore struct {
	mu         sync.Mutex
	classes    map[uuid.UUID]*ClassInfo
	requests   map[uuid.UUID]model.ReservationModel
	enrolled   map[uuid.UUID]map[uuid.UUID]bool
	emails     map[uuid.UUID]string
	failUpdate bool
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{
		classes:  map[uuid.UUID]*ClassInfo{},
		requests: map[uuid.UUID]model.ReservationModel{},
		enrolled: map[uuid.UUID]map[uuid.UUID]bool{},
		emails:   map[uuid.UUID]string{},
	}
}

func (f *fakeReservationStore) FindClass(_ context.Context, classID uuid.UUID) (*ClassInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classes[classID]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (f *fakeReservationStore) HasPendingRequest(_ context.Context, studentID, classID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.ReservationStudentUserID == studentID &&
			r.ReservationClassID == classID &&
			r.ReservationStatus == model.ReservationPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservationStore) HasActiveInscription(_ context.Context, studentID, classID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enrolled[studentID][classID], nil
}

func (f *fakeReservationStore) Create(_ context.Context, r *model.ReservationModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ReservationID == uuid.Nil {
		r.ReservationID = uuid.New()
	}
	f.requests[r.ReservationID] = *r
	return nil
}

func (f *fakeReservationStore) FindByID(_ context.Context, id uuid.UUID) (*model.ReservationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	out := r
	return &out, nil
}

func (f *fakeReservationStore) Update(_ context.Context, r *model.ReservationModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return errors.New("storage unavailable")
	}
	if _, ok := f.requests[r.ReservationID]; !ok {
		return errors.New("not found")
	}
	f.requests[r.ReservationID] = *r
	return nil
}

func (f *fakeReservationStore) UserEmail(_ context.Context, userID uuid.UUID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emails[userID], nil
}

func (f *fakeReservationStore) statusOf(t *testing.T, id uuid.UUID) model.ReservationStatus {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	require.True(t, ok)
	return r.ReservationStatus
}

type fakeCreator struct {
	mu     sync.Mutex
	calls  []insService.CreateInput
	err    error
	nextID uuid.UUID
}

func (f *fakeCreator) Create(_ context.Context, in insService.CreateInput) (*insService.CreateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	if f.nextID == uuid.Nil {
		f.nextID = uuid.New()
	}
	return &insService.CreateResult{
		Inscription: &insModel.InscriptionModel{
			InscriptionID:     f.nextID,
			InscriptionStatus: insModel.InscriptionConfirmed,
		},
		RequestedPaymentType: in.PaymentType,
		EffectivePaymentType: in.PaymentType,
	}, nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

type reservationFixture struct {
	svc     *ReservationService
	store   *fakeReservationStore
	creator *fakeCreator
	mail    *recordingMailer

	adminID   uuid.UUID
	studentID uuid.UUID
	classID   uuid.UUID
	academyID uuid.UUID
}

func newReservationFixture(t *testing.T, price float64) *reservationFixture {
	t.Helper()

	f := &reservationFixture{
		store:     newFakeReservationStore(),
		creator:   &fakeCreator{},
		mail:      &recordingMailer{},
		adminID:   uuid.New(),
		studentID: uuid.New(),
		classID:   uuid.New(),
		academyID: uuid.New(),
	}
	f.store.classes[f.classID] = &ClassInfo{
		ClassID:   f.classID,
		AcademyID: f.academyID,
		Price:     price,
		Currency:  "USD",
		IsActive:  true,
	}
	f.store.emails[f.studentID] = "student@example.com"
	f.svc = NewReservationService(f.store, f.creator, f.mail)
	return f
}

func (f *reservationFixture) pending(t *testing.T) uuid.UUID {
	t.Helper()
	r, err := f.svc.CreateReservation(context.Background(), f.studentID, f.classID, nil)
	require.NoError(t, err)
	require.Equal(t, model.ReservationPending, r.ReservationStatus)
	return r.ReservationID
}

func reservationStatusCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestCreateReservationGuards(t *testing.T) {
	f := newReservationFixture(t, 0)
	ctx := context.Background()

	_, err := f.svc.CreateReservation(ctx, f.studentID, uuid.New(), nil)
	assert.Equal(t, fiber.StatusNotFound, reservationStatusCode(t, err))

	f.store.classes[f.classID].IsActive = false
	_, err = f.svc.CreateReservation(ctx, f.studentID, f.classID, nil)
	assert.Equal(t, fiber.StatusBadRequest, reservationStatusCode(t, err))
	f.store.classes[f.classID].IsActive = true

	f.pending(t)
	_, err = f.svc.CreateReservation(ctx, f.studentID, f.classID, nil)
	assert.Equal(t, fiber.StatusConflict, reservationStatusCode(t, err))
	assert.Contains(t, err.Error(), "pending request")
}

func TestCreateReservationRejectsEnrolledStudent(t *testing.T) {
	f := newReservationFixture(t, 0)
	f.store.enrolled[f.studentID] = map[uuid.UUID]bool{f.classID: true}

	_, err := f.svc.CreateReservation(context.Background(), f.studentID, f.classID, nil)
	assert.Equal(t, fiber.StatusConflict, reservationStatusCode(t, err))
	assert.Contains(t, err.Error(), "already enrolled")
}

func TestProcessApprovalLinksInscription(t *testing.T) {
	f := newReservationFixture(t, 0)
	id := f.pending(t)

	r, err := f.svc.ProcessReservation(context.Background(), ProcessInput{
		RequestID: id,
		AdminID:   f.adminID,
		AcademyID: f.academyID,
		Decision:  model.ReservationApproved,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ReservationApproved, r.ReservationStatus)
	require.NotNil(t, r.ReservationInscriptionID)
	require.NotNil(t, r.ReservationProcessedByAdminID)
	assert.Equal(t, f.adminID, *r.ReservationProcessedByAdminID)

	require.Len(t, f.creator.calls, 1)
	call := f.creator.calls[0]
	assert.Equal(t, f.studentID, call.StudentID)
	assert.Equal(t, f.classID, call.ClassID)
	assert.Equal(t, insModel.Complimentary, call.PaymentType, "a free class defaults to complimentary")
	require.NotNil(t, call.ReservationRequestID)
	assert.Equal(t, id, *call.ReservationRequestID)

	require.Len(t, f.mail.sent, 1)
	assert.Contains(t, f.mail.sent[0].Subject, "approved")
}

func TestProcessApprovalPricedClassNeedsPaymentDetails(t *testing.T) {
	f := newReservationFixture(t, 25)
	id := f.pending(t)

	_, err := f.svc.ProcessReservation(context.Background(), ProcessInput{
		RequestID: id,
		AdminID:   f.adminID,
		AcademyID: f.academyID,
		Decision:  model.ReservationApproved,
	})
	assert.Equal(t, fiber.StatusBadRequest, reservationStatusCode(t, err))
	assert.Empty(t, f.creator.calls)
	assert.Equal(t, model.ReservationPending, f.store.statusOf(t, id))
}

func TestProcessApprovalPassesPaymentDetails(t *testing.T) {
	f := newReservationFixture(t, 25)
	id := f.pending(t)

	membershipID := uuid.New()
	_, err := f.svc.ProcessReservation(context.Background(), ProcessInput{
		RequestID: id,
		AdminID:   f.adminID,
		AcademyID: f.academyID,
		Decision:  model.ReservationApproved,
		PaymentDetails: &PaymentDetails{
			PaymentType:  insModel.Membership,
			MembershipID: &membershipID,
		},
	})
	require.NoError(t, err)

	require.Len(t, f.creator.calls, 1)
	assert.Equal(t, insModel.Membership, f.creator.calls[0].PaymentType)
	require.NotNil(t, f.creator.calls[0].MembershipID)
	assert.Equal(t, membershipID, *f.creator.calls[0].MembershipID)
}

func TestProcessApprovalFailureLeavesRequestPending(t *testing.T) {
	f := newReservationFixture(t, 0)
	id := f.pending(t)
	f.creator.err = fiber.NewError(fiber.StatusConflict, "Class is full")

	_, err := f.svc.ProcessReservation(context.Background(), ProcessInput{
		RequestID: id,
		AdminID:   f.adminID,
		AcademyID: f.academyID,
		Decision:  model.ReservationApproved,
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, reservationStatusCode(t, err))
	assert.Equal(t, model.ReservationPending, f.store.statusOf(t, id))
	assert.Empty(t, f.mail.sent)

	// The admin can still reject after a failed approval.
	f.creator.err = nil
	r, err := f.svc.ProcessReservation(context.Background(), ProcessInput{
		RequestID: id,
		AdminID:   f.adminID,
		AcademyID: f.academyID,
		Decision:  model.ReservationRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReservationRejected, r.ReservationStatus)
}

func TestProcessResolvedRequestIsFrozen(t *testing.T) {
	f := newReservationFixture(t, 0)
	id := f.pending(t)

	notes := "no seats this term"
	_, err := f.svc.ProcessReservation(context.Background(), ProcessInput{
		RequestID:  id,
		AdminID:    f.adminID,
		AcademyID:  f.academyID,
		Decision:   model.ReservationRejected,
		AdminNotes: &notes,
	})
	require.NoError(t, err)

	_, err = f.svc.ProcessReservation(context.Background(), ProcessInput{
		RequestID: id,
		AdminID:   f.adminID,
		AcademyID: f.academyID,
		Decision:  model.ReservationApproved,
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, reservationStatusCode(t, err))
	assert.Contains(t, err.Error(), "REJECTED")
	assert.Equal(t, model.ReservationRejected, f.store.statusOf(t, id))
	assert.Empty(t, f.creator.calls)
}

func TestProcessScopedToAcademy(t *testing.T) {
	f := newReservationFixture(t, 0)
	id := f.pending(t)

	_, err := f.svc.ProcessReservation(context.Background(), ProcessInput{
		RequestID: id,
		AdminID:   f.adminID,
		AcademyID: uuid.New(),
		Decision:  model.ReservationApproved,
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, reservationStatusCode(t, err))

	// The other academy's admin changed nothing and enrolled nobody.
	assert.Equal(t, model.ReservationPending, f.store.statusOf(t, id))
	assert.Empty(t, f.creator.calls)
	assert.Empty(t, f.mail.sent)
}

func TestProcessApprovalDecisionSaveFailure(t *testing.T) {
	f := newReservationFixture(t, 0)
	id := f.pending(t)
	f.store.failUpdate = true

	_, err := f.svc.ProcessReservation(context.Background(), ProcessInput{
		RequestID: id,
		AdminID:   f.adminID,
		AcademyID: f.academyID,
		Decision:  model.ReservationApproved,
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, reservationStatusCode(t, err))

	// The inscription was created but the request could not leave
	// PENDING; the linkage is surfaced to the operator, not swallowed.
	require.Len(t, f.creator.calls, 1)
	assert.Equal(t, model.ReservationPending, f.store.statusOf(t, id))
}

func TestProcessDecisionValidation(t *testing.T) {
	f := newReservationFixture(t, 0)
	id := f.pending(t)

	_, err := f.svc.ProcessReservation(context.Background(), ProcessInput{
		RequestID: id,
		AdminID:   f.adminID,
		AcademyID: f.academyID,
		Decision:  model.ReservationCancelledByUser,
	})
	assert.Equal(t, fiber.StatusBadRequest, reservationStatusCode(t, err))
	assert.Equal(t, model.ReservationPending, f.store.statusOf(t, id))
}

func TestCancelByUserOwnerOnly(t *testing.T) {
	f := newReservationFixture(t, 0)
	id := f.pending(t)

	_, err := f.svc.CancelByUser(context.Background(), id, uuid.New())
	assert.Equal(t, fiber.StatusForbidden, reservationStatusCode(t, err))
	assert.Equal(t, model.ReservationPending, f.store.statusOf(t, id))

	r, err := f.svc.CancelByUser(context.Background(), id, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelledByUser, r.ReservationStatus)
}

func TestCancelByUserRequiresPending(t *testing.T) {
	f := newReservationFixture(t, 0)
	id := f.pending(t)

	_, err := f.svc.CancelByUser(context.Background(), id, f.studentID)
	require.NoError(t, err)

	_, err = f.svc.CancelByUser(context.Background(), id, f.studentID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, reservationStatusCode(t, err))
}

func TestDecisionMailFailureDoesNotFailDecision(t *testing.T) {
	f := newReservationFixture(t, 0)
	id := f.pending(t)
	f.mail.err = errors.New("smtp down")

	r, err := f.svc.ProcessReservation(context.Background(), ProcessInput{
		RequestID: id,
		AdminID:   f.adminID,
		AcademyID: f.academyID,
		Decision:  model.ReservationRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReservationRejected, r.ReservationStatus)
}
