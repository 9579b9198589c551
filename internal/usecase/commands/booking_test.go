//go:build unit

package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/domain/event"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/clock"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/commands"
	"resource-booking/internal/usecase/shared"
	"resource-booking/tests/common/builder"
	commandsmock "resource-booking/tests/mock/commands"
	sharedmock "resource-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// stubUoW runs the transactional closure against a mocked Tx without a
// database.
type stubUoW struct {
	reads shared.Reads
	tx    shared.Tx
}

func (s *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, s.tx)
}

func (s *stubUoW) Reads() shared.Reads {
	return s.reads
}

type BookingCommandsTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	reads       *sharedmock.MockReads
	tx          *sharedmock.MockTx
	bookings    *sharedmock.MockBookingRepository
	payments    *sharedmock.MockPaymentRepository
	paymentCmds *commandsmock.MockPaymentCommands
	gateway     *commandsmock.MockPaymentGateway
	events      *commandsmock.MockEventPublisher
	clk         *clock.MockClock
	sut         commands.BookingCommands
	resource    *shared.ResourceSnapshot
	baseBuilder *builder.BookingBuilder
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.reads = sharedmock.NewMockReads(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.bookings = sharedmock.NewMockBookingRepository(s.ctrl)
	s.payments = sharedmock.NewMockPaymentRepository(s.ctrl)
	s.paymentCmds = commandsmock.NewMockPaymentCommands(s.ctrl)
	s.gateway = commandsmock.NewMockPaymentGateway(s.ctrl)
	s.events = commandsmock.NewMockEventPublisher(s.ctrl)
	s.clk = clock.NewMockClock(time.Now().UTC())

	uow := &stubUoW{reads: s.reads, tx: s.tx}
	s.sut = commands.NewBookingCommands(uow, s.gateway, s.paymentCmds, s.events, s.clk, "usd", slog.New(slog.DiscardHandler))

	s.baseBuilder = builder.NewBookingBuilder()
	res := builder.NewResourceBuilder()
	res.ID = s.baseBuilder.ResourceID
	s.resource = res.BuildSnapshot()
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) params() commands.CreateBookingParams {
	return s.baseBuilder.BuildCreateParams()
}

func (s *BookingCommandsTestSuite) expectFreeResource() {
	s.reads.EXPECT().ResourceByID(gomock.Any(), s.resource.ID).Return(s.resource, nil)
	s.reads.EXPECT().
		ActiveBookingsOverlapping(gomock.Any(), s.resource.ID, s.baseBuilder.StartTime, s.baseBuilder.EndTime).
		Return(nil, nil)
}

// ============================================================
// CreateBooking: validation and advisory checks
// ============================================================

func (s *BookingCommandsTestSuite) TestCreateBookingRejectsInvertedRange() {
	params := s.params()
	params.StartTime, params.EndTime = params.EndTime, params.StartTime

	_, err := s.sut.CreateBooking(context.Background(), params)

	s.ErrorIs(err, errs.ErrInvalidRange)
}

func (s *BookingCommandsTestSuite) TestCreateBookingRejectsPastStart() {
	s.clk.Set(s.baseBuilder.EndTime.Add(time.Hour))

	_, err := s.sut.CreateBooking(context.Background(), s.params())

	s.ErrorIs(err, errs.ErrInvalidRange)
}

func (s *BookingCommandsTestSuite) TestCreateBookingUnknownResource() {
	s.reads.EXPECT().
		ResourceByID(gomock.Any(), s.resource.ID).
		Return(nil, infra.WrapRepoErr(infra.KindNotFound, "resource not found", errors.New("no rows")))

	_, err := s.sut.CreateBooking(context.Background(), s.params())

	s.ErrorIs(err, errs.ErrResourceNotFound)
}

func (s *BookingCommandsTestSuite) TestCreateBookingAdvisoryConflict() {
	s.reads.EXPECT().ResourceByID(gomock.Any(), s.resource.ID).Return(s.resource, nil)
	s.reads.EXPECT().
		ActiveBookingsOverlapping(gomock.Any(), s.resource.ID, gomock.Any(), gomock.Any()).
		Return([]shared.BookingSnapshot{*s.baseBuilder.BuildSnapshot()}, nil)

	_, err := s.sut.CreateBooking(context.Background(), s.params())

	s.ErrorIs(err, errs.ErrUnavailable)
}

// ============================================================
// CreateBooking: payment outcomes
// ============================================================

func (s *BookingCommandsTestSuite) TestCreateBookingWithoutPaymentMethodQuotesOnly() {
	s.expectFreeResource()

	params := s.params()
	params.PaymentMethodRef = nil

	result, err := s.sut.CreateBooking(context.Background(), params)

	s.Require().NoError(err)
	s.Require().NotNil(result.RequiresPaymentMethod)
	s.Nil(result.Booking)
	// 2 hours at 5000 cents per hour
	s.Equal(int64(10000), result.RequiresPaymentMethod.AmountCents)
	s.Equal("usd", result.RequiresPaymentMethod.Currency)
}

func (s *BookingCommandsTestSuite) TestCreateBookingDeclinedChargePersistsNothing() {
	s.expectFreeResource()
	s.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(&commands.ChargeResult{
		Outcome:       commands.OutcomeFailed,
		FailureReason: "card_declined",
	}, nil)

	_, err := s.sut.CreateBooking(context.Background(), s.params())

	s.ErrorIs(err, errs.ErrPaymentFailed)
}

func (s *BookingCommandsTestSuite) TestCreateBookingRequiresActionPersistsNothing() {
	s.expectFreeResource()
	s.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(&commands.ChargeResult{
		TransactionID: "pi_123",
		Outcome:       commands.OutcomeRequiresAction,
		ClientSecret:  "pi_123_secret",
	}, nil)

	result, err := s.sut.CreateBooking(context.Background(), s.params())

	s.Require().NoError(err)
	s.Require().NotNil(result.RequiresAction)
	s.Nil(result.Booking)
	s.Equal("pi_123_secret", result.RequiresAction.ClientSecret)
}

func (s *BookingCommandsTestSuite) TestCreateBookingIndeterminatePassesThrough() {
	s.expectFreeResource()
	s.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(nil, errs.ErrPaymentIndeterminate)

	_, err := s.sut.CreateBooking(context.Background(), s.params())

	s.ErrorIs(err, errs.ErrPaymentIndeterminate)
}

func (s *BookingCommandsTestSuite) TestCreateBookingSuccessPersistsAndPublishes() {
	s.expectFreeResource()

	var capturedReq commands.ChargeRequest
	s.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req commands.ChargeRequest) (*commands.ChargeResult, error) {
			capturedReq = req
			return &commands.ChargeResult{TransactionID: "pi_ok", Outcome: commands.OutcomeSucceeded}, nil
		})

	s.tx.EXPECT().Bookings().Return(s.bookings)
	s.tx.EXPECT().Payments().Return(s.payments)
	s.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	var published event.LifecycleEvent
	s.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, ev event.LifecycleEvent) {
			published = ev
		})
	s.paymentCmds.EXPECT().
		SyncPaymentMethod(gomock.Any(), s.baseBuilder.UserID, s.baseBuilder.PaymentMethodRef).
		Return(nil)

	result, err := s.sut.CreateBooking(context.Background(), s.params())

	s.Require().NoError(err)
	s.Require().NotNil(result.Booking)
	s.Equal(int64(10000), result.Booking.AmountCents)
	s.Equal(booking.StatusConfirmed.String(), result.Booking.Status)
	s.Equal("pi_ok", result.Booking.TransactionID)

	s.Equal(int64(10000), capturedReq.AmountCents)
	s.NotEmpty(capturedReq.IdempotencyKey)

	s.Require().NotNil(published)
	s.Equal(event.KindBookingConfirmed, published.Kind())
	s.Equal(result.Booking.BookingID, published.BookingID())
}

func (s *BookingCommandsTestSuite) TestCreateBookingSyncFailureKeepsConfirmation() {
	s.expectFreeResource()
	s.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(&commands.ChargeResult{
		TransactionID: "pi_ok",
		Outcome:       commands.OutcomeSucceeded,
	}, nil)

	s.tx.EXPECT().Bookings().Return(s.bookings)
	s.tx.EXPECT().Payments().Return(s.payments)
	s.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.events.EXPECT().Publish(gomock.Any(), gomock.Any())

	s.paymentCmds.EXPECT().
		SyncPaymentMethod(gomock.Any(), s.baseBuilder.UserID, s.baseBuilder.PaymentMethodRef).
		Return(errs.New("gateway lookup failed"))

	result, err := s.sut.CreateBooking(context.Background(), s.params())

	s.Require().NoError(err)
	s.Require().NotNil(result.Booking)
	s.Equal(booking.StatusConfirmed.String(), result.Booking.Status)
}

func (s *BookingCommandsTestSuite) TestCreateBookingSameIntentSameIdempotencyKey() {
	keys := make([]string, 0, 2)
	for range 2 {
		s.expectFreeResource()
		s.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req commands.ChargeRequest) (*commands.ChargeResult, error) {
				keys = append(keys, req.IdempotencyKey)
				return &commands.ChargeResult{Outcome: commands.OutcomeFailed, FailureReason: "declined"}, nil
			})
		_, _ = s.sut.CreateBooking(context.Background(), s.params())
	}

	s.Require().Len(keys, 2)
	s.Equal(keys[0], keys[1])
}

// ============================================================
// CreateBooking: persistence failure after a successful charge
// ============================================================

func (s *BookingCommandsTestSuite) TestCreateBookingLostRaceRefundsAndReportsUnavailable() {
	s.expectFreeResource()
	s.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(&commands.ChargeResult{
		TransactionID: "pi_race",
		Outcome:       commands.OutcomeSucceeded,
	}, nil)

	s.tx.EXPECT().Bookings().Return(s.bookings)
	s.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(
		infra.WrapRepoErr(infra.KindConflict, "overlapping booking", errors.New("23P01")))

	s.gateway.EXPECT().Refund(gomock.Any(), "pi_race", nil).Return(&commands.RefundResult{
		RefundID: "re_1",
		Status:   "succeeded",
	}, nil)

	_, err := s.sut.CreateBooking(context.Background(), s.params())

	s.ErrorIs(err, errs.ErrUnavailable)
}

func (s *BookingCommandsTestSuite) TestCreateBookingPersistFailureIsOrphanedPayment() {
	s.expectFreeResource()
	s.gateway.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(&commands.ChargeResult{
		TransactionID: "pi_orphan",
		Outcome:       commands.OutcomeSucceeded,
	}, nil)

	s.tx.EXPECT().Bookings().Return(s.bookings)
	s.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(
		infra.WrapRepoErr(infra.KindDBFailure, "connection lost", errors.New("broken pipe")))

	_, err := s.sut.CreateBooking(context.Background(), s.params())

	s.ErrorIs(err, errs.ErrOrphanedPayment)
	s.NotErrorIs(err, errs.ErrUnavailable)
}

// ============================================================
// UpdateBookingStatus
// ============================================================

func (s *BookingCommandsTestSuite) TestUpdateStatusCanceledIsTerminal() {
	snap := s.baseBuilder.BuildSnapshot()
	snap.Status = booking.StatusCanceled.String()

	s.tx.EXPECT().Reads().Return(s.reads)
	s.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)

	_, err := s.sut.UpdateBookingStatus(context.Background(), snap.ID, booking.StatusConfirmed, "")

	s.ErrorIs(err, errs.ErrInvalidTransition)
}

func (s *BookingCommandsTestSuite) TestUpdateStatusCancelPublishesExactlyOneEvent() {
	snap := s.baseBuilder.BuildSnapshot()
	snap.Status = booking.StatusConfirmed.String()

	s.tx.EXPECT().Reads().Return(s.reads)
	s.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
	s.tx.EXPECT().Bookings().Return(s.bookings)
	s.bookings.EXPECT().UpdateStatus(gomock.Any(), snap.ID, booking.StatusCanceled).Return(nil)

	canceled := 0
	s.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, ev event.LifecycleEvent) {
			s.Equal(event.KindBookingCanceled, ev.Kind())
			canceled++
		}).Times(1)

	updated, err := s.sut.UpdateBookingStatus(context.Background(), snap.ID, booking.StatusCanceled, "guest request")

	s.Require().NoError(err)
	s.Equal(booking.StatusCanceled.String(), updated.Status)
	s.Equal(1, canceled)
}

func (s *BookingCommandsTestSuite) TestUpdateStatusUnknownBooking() {
	id := uuid.New()
	s.tx.EXPECT().Reads().Return(s.reads)
	s.reads.EXPECT().BookingByID(gomock.Any(), id).Return(
		nil, infra.WrapRepoErr(infra.KindNotFound, "booking not found", errors.New("no rows")))

	_, err := s.sut.UpdateBookingStatus(context.Background(), id, booking.StatusCanceled, "")

	s.ErrorIs(err, errs.ErrBookingNotFound)
}
