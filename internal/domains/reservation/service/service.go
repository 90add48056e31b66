package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staybook/config"
	"staybook/infras/metrics"
	"staybook/infras/otel"
	listingModel "staybook/internal/domains/listing/model"
	listingRepo "staybook/internal/domains/listing/repository"
	"staybook/internal/domains/reservation/draft"
	"staybook/internal/domains/reservation/event"
	"staybook/internal/domains/reservation/ledger"
	"staybook/internal/domains/reservation/model"
	"staybook/internal/domains/reservation/model/dto"
	"staybook/internal/domains/reservation/repository"
	"staybook/shared"
	"staybook/shared/constant"
	"staybook/shared/daterange"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
	"staybook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	operationCreate = "create"
	operationUpdate = "update"

	outcomeCreated  = "created"
	outcomeUpdated  = "updated"
	outcomeConflict = "conflict"
	outcomeInvalid  = "invalid"

	systemUser = "system"
)

var errUnavailable = failure.Conflict("listing is not available for the selected dates")

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) error
	Confirm(ctx context.Context, id string) error
	CompletePast(ctx context.Context) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams, status string) (dto.GetReservationsResponse, error)
	GetByListing(ctx context.Context, req gDto.QueryParams, listingID string, filter dto.ReservationFilter) (dto.GetReservationsResponse, error)
}

type serviceImpl struct {
	repo        repository.Reservation
	listingRepo listingRepo.Listing
	publisher   event.Publisher
	cfg         *config.Config
	otel        otel.Otel
}

func New(repo repository.Reservation, listingRepo listingRepo.Listing, publisher event.Publisher, cfg *config.Config, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:        repo,
		listingRepo: listingRepo,
		publisher:   publisher,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	stay, err := s.validateDraft(req.ToDraft())
	if err != nil {
		metrics.ObserveReservation(operationCreate, outcomeInvalid)

		return res, err
	}

	listing, err := s.bookableListing(ctx, req.ListingID, stay)
	if err != nil {
		return res, err
	}

	records, err := s.listingReservations(ctx, listing.ID)
	if err != nil {
		return res, err
	}

	if ledger.New(records...).HasConflict(listing.ID, stay.Range()) {
		metrics.ObserveReservation(operationCreate, outcomeConflict)

		return res, errUnavailable
	}

	reservation := req.ToModel(user, stay, total(stay, listing))

	if err = s.repo.Insert(ctx, reservation); err != nil {
		if isOverlapViolation(err) {
			metrics.ObserveReservation(operationCreate, outcomeConflict)

			return res, errUnavailable
		}

		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	metrics.ObserveReservation(operationCreate, outcomeCreated)
	s.publish(ctx, event.New(event.TypeCreated, reservation))

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if reservation.GuestID != user {
		return res, failure.Forbidden("only the guest can edit this reservation") // nolint:wrapcheck
	}

	if reservation.Status == model.StatusCancelled {
		return res, failure.BadRequestFromString("a cancelled reservation cannot be edited") // nolint:wrapcheck
	}

	stay, err := s.validateDraft(req.ToDraft())
	if err != nil {
		metrics.ObserveReservation(operationUpdate, outcomeInvalid)

		return res, err
	}

	listing, err := s.bookableListing(ctx, reservation.ListingID, stay)
	if err != nil {
		return res, err
	}

	records, err := s.listingReservations(ctx, listing.ID)
	if err != nil {
		return res, err
	}

	if ledger.New(records...).HasConflictExcept(listing.ID, stay.Range(), reservation.ID) {
		metrics.ObserveReservation(operationUpdate, outcomeConflict)

		return res, errUnavailable
	}

	update := dto.UpdateStayRequest{
		CheckIn:    stay.CheckIn,
		CheckOut:   stay.CheckOut,
		GuestCount: stay.GuestCount,
		Total:      total(stay, listing),
	}

	if err = s.repo.Update(ctx, shared.TransformFields(update, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if isOverlapViolation(err) {
			metrics.ObserveReservation(operationUpdate, outcomeConflict)

			return res, errUnavailable
		}

		log.Error().Err(err).Msg("failed to update reservation")

		return res, fmt.Errorf("failed to update reservation: %w", err)
	}

	reservation.CheckIn = update.CheckIn
	reservation.CheckOut = update.CheckOut
	reservation.GuestCount = update.GuestCount
	reservation.Total = update.Total
	reservation.Touch(user)

	metrics.ObserveReservation(operationUpdate, outcomeUpdated)
	s.publish(ctx, event.New(event.TypeUpdated, reservation))

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, listing, err := s.getWithListing(ctx, id)
	if err != nil {
		return err
	}

	if reservation.GuestID != user && listing.HostID != user {
		return failure.ResourceRestrictedError
	}

	switch reservation.Status {
	case model.StatusCancelled:
		return failure.BadRequestFromString("reservation is already cancelled") // nolint:wrapcheck
	case model.StatusCompleted:
		return failure.BadRequestFromString("a completed reservation cannot be cancelled") // nolint:wrapcheck
	}

	return s.changeStatus(ctx, reservation, model.StatusCancelled, event.TypeCancelled, user)
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, listing, err := s.getWithListing(ctx, id)
	if err != nil {
		return err
	}

	if listing.HostID != user {
		return failure.Forbidden("only the host of the listing can confirm this reservation") // nolint:wrapcheck
	}

	if reservation.Status != model.StatusPending {
		return failure.BadRequestFromString("only pending reservations can be confirmed") // nolint:wrapcheck
	}

	return s.changeStatus(ctx, reservation, model.StatusConfirmed, event.TypeConfirmed, user)
}

func (s *serviceImpl) CompletePast(ctx context.Context) (completed int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompletePast")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservations, err := s.repo.CompletePast(ctx, timezone.Now(), systemUser)
	if err != nil {
		log.Error().Err(err).Msg("failed to complete past reservations")

		return 0, fmt.Errorf("failed to complete past reservations: %w", err)
	}

	if len(reservations) == 0 {
		return 0, nil
	}

	events := make([]event.Event, len(reservations))
	for i, reservation := range reservations {
		events[i] = event.New(event.TypeCompleted, reservation)
	}

	s.publish(ctx, events...)

	log.Info().Int("count", len(reservations)).Msg("completed past reservations")

	return len(reservations), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, listing, err := s.getWithListing(ctx, id)
	if err != nil {
		return res, err
	}

	if reservation.GuestID != user && listing.HostID != user {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams, status string) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldGuestID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName},
		},
	}

	if status != constant.Empty {
		statusFilter, err := byStatus(status)
		if err != nil {
			return res, err
		}

		filter.Filters = append(filter.Filters, statusFilter)
	}

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) GetByListing(ctx context.Context, req gDto.QueryParams, listingID string, f dto.ReservationFilter) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByListing")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	listing, err := s.listingRepo.Get(ctx, shared.FilterByID(listingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return res, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	if listing.HostID != user {
		return res, failure.ResourceRestrictedError
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldListingID, Operator: gDto.FilterOperatorEq, Value: listingID, Table: model.TableName},
		},
	}

	if f.Status != constant.Empty {
		statusFilter, err := byStatus(f.Status)
		if err != nil {
			return res, err
		}

		filter.Filters = append(filter.Filters, statusFilter)
	}

	window, err := checkInWindow(f.CheckInFrom, f.CheckInTo)
	if err != nil {
		return res, err
	}

	filter.Filters = append(filter.Filters, window...)

	return s.list(ctx, req, filter)
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	if req.SortBy == constant.Empty {
		req.SortBy, req.SortDir = model.FieldCheckIn, gDto.SortDirAsc
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) validateDraft(d draft.Draft, err error) (draft.Draft, error) {
	if err != nil {
		return d, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = draft.Validate(d); err != nil {
		return d, failure.BadRequest(err) // nolint:wrapcheck
	}

	return d, nil
}

// bookableListing loads the listing and checks it accepts the stay.
func (s *serviceImpl) bookableListing(ctx context.Context, listingID string, stay draft.Draft) (listingModel.Listing, error) {
	listing, err := s.listingRepo.Get(ctx, shared.FilterByID(listingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return listing, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return listing, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	if listing.Status != listingModel.StatusActive {
		return listing, failure.BadRequestFromString("listing is not accepting reservations") // nolint:wrapcheck
	}

	if listing.MaxGuests > 0 && stay.GuestCount > listing.MaxGuests {
		return listing, failure.BadRequestFromString(fmt.Sprintf("listing allows at most %d guests", listing.MaxGuests)) // nolint:wrapcheck
	}

	return listing, nil
}

func (s *serviceImpl) listingReservations(ctx context.Context, listingID string) ([]model.Reservation, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldListingID, Operator: gDto.FilterOperatorEq, Value: listingID, Table: model.TableName},
		},
	}

	records, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing reservations")

		return nil, fmt.Errorf("failed to get listing reservations: %w", err)
	}

	return records, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) getWithListing(ctx context.Context, id string) (model.Reservation, listingModel.Listing, error) {
	reservation, err := s.get(ctx, id)
	if err != nil {
		return reservation, listingModel.Listing{}, err
	}

	listing, err := s.listingRepo.Get(ctx, shared.FilterByID(reservation.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return reservation, listing, fmt.Errorf("failed to get listing: %w", err)
	}

	return reservation, listing, nil
}

func (s *serviceImpl) changeStatus(ctx context.Context, reservation model.Reservation, status model.Status, eventType event.Type, user string) error {
	update := dto.UpdateStatusRequest{Status: status}

	if err := s.repo.Update(ctx, shared.TransformFields(update, user), shared.FilterByID(reservation.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("status", string(status)).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	reservation.Status = status
	s.publish(ctx, event.New(eventType, reservation))

	return nil
}

// publish never fails the caller; the row is already committed.
func (s *serviceImpl) publish(ctx context.Context, events ...event.Event) {
	if err := s.publisher.Publish(context.WithoutCancel(ctx), events...); err != nil {
		log.Warn().Err(err).Int("events", len(events)).Msg("failed to publish reservation events")
	}
}

func total(stay draft.Draft, listing listingModel.Listing) float64 {
	return float64(stay.Nights()) * listing.PricePerNight
}

func byStatus(status string) (gDto.Filter, error) {
	if !model.Status(status).Valid() {
		return gDto.Filter{}, failure.BadRequestFromString("status must be one of CONFIRMED PENDING CANCELLED COMPLETED") // nolint:wrapcheck
	}

	return gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: status, Table: model.TableName}, nil
}

// checkInWindow bounds check-in dates on both ends, inclusive.
func checkInWindow(from, to string) ([]any, error) {
	var filters []any

	start, err := daterange.ParseDate(from, timezone.GetLocation())
	if err != nil {
		return nil, failure.BadRequestFromString("from: " + err.Error()) // nolint:wrapcheck
	}

	end, err := daterange.ParseDate(to, timezone.GetLocation())
	if err != nil {
		return nil, failure.BadRequestFromString("to: " + err.Error()) // nolint:wrapcheck
	}

	if !start.IsZero() {
		filters = append(filters, gDto.Filter{
			ArgName: "check_in_from", Field: model.FieldCheckIn, Operator: gDto.FilterOperatorGreaterEq, Value: start, Table: model.TableName,
		})
	}

	if !end.IsZero() {
		filters = append(filters, gDto.Filter{
			ArgName: "check_in_to", Field: model.FieldCheckIn, Operator: gDto.FilterOperatorLessEq, Value: end, Table: model.TableName,
		})
	}

	return filters, nil
}

func isOverlapViolation(err error) bool {
	return failure.IsPostgresCode(err, constant.PqErrorCodeExclusionViolation)
}
