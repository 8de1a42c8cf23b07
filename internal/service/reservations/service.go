package reservations

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
)

// maxListDays ограничение длины периода в списке броней
const maxListDays = 92

// Service сервис для работы с бронями
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	notifier        Notifier
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		notifier:        notifier,
		logger:          logger,
	}
}

// GetByID получает бронь по ID.
// Видеть бронь могут клиент-владелец и мастер.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if res.CustomerID != userID && res.StylistID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// ListByStylist получает брони мастера за период. Доступно только самому мастеру.
func (s *Service) ListByStylist(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByStylist: stylist=%d, user=%d, period=%s..%s",
		req.StylistID, req.ActorID, domain.DateKey(req.From), domain.DateKey(req.To))

	if req.ActorID != req.StylistID {
		s.logger.Warn("ListByStylist: user=%d is not stylist=%d", req.ActorID, req.StylistID)
		return nil, ErrAccessDenied
	}

	if req.From.IsZero() || req.To.IsZero() || req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: invalid period", ErrInvalidInput)
	}
	if domain.DaysBetween(req.From, req.To) > maxListDays {
		return nil, fmt.Errorf("%w: period is longer than %d days", ErrInvalidInput, maxListDays)
	}

	var status *domain.ReservationStatus
	if req.Status != nil {
		parsed, ok := domain.ParseReservationStatus(*req.Status)
		if !ok {
			s.logger.Warn("ListByStylist: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	filter := domain.ReservationFilter{
		StylistID: req.StylistID,
		From:      domain.DateOnly(req.From),
		To:        domain.DateOnly(req.To),
	}
	if !req.IncludeCanceled && (status == nil || *status != domain.StatusCanceled) {
		filter.ExcludeStatuses = []domain.ReservationStatus{domain.StatusCanceled}
	}

	list, err := s.reservationRepo.ListByStylist(ctx, filter)
	if err != nil {
		s.logger.Error("ListByStylist: repository error for stylist=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: ListByStylist - repository error: %v", ErrInternal, err)
	}

	if status != nil {
		filtered := make([]*domain.Reservation, 0, len(list))
		for _, r := range list {
			if r.Status == *status {
				filtered = append(filtered, r)
			}
		}
		list = filtered
	}

	s.logger.Info("ListByStylist: fetched %d reservations for stylist=%d", len(list), req.StylistID)
	return models.FromDomainReservationList(list), nil
}

// Cancel отменяет бронь.
// Клиент отменяет свою бронь, мастер любую бронь к себе. В бронь записывается, кто отменил.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: canceling reservation id=%d by user=%d (%s)", id, req.ActorID, req.ActorRole)

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var canceled *domain.Reservation
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Читаем бронь с блокировкой строки
		res, err := s.getReservation(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if !canAct(res, req.ActorID, req.ActorRole) {
			s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.ActorID, id)
			return ErrAccessDenied
		}

		if !res.CanBeCanceled() {
			s.logger.Warn("Cancel: reservation id=%d cannot be canceled, status=%s", id, res.Status)
			return ErrCannotCancel
		}

		if err := s.reservationRepo.Cancel(txCtx, id, req.ActorRole, req.Reason); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		res.Status = domain.StatusCanceled
		res.CanceledBy = &req.ActorRole
		res.CancellationReason = req.Reason
		canceled = res
		return nil
	})
	if err != nil {
		return nil, normalizeError(err)
	}

	s.notifier.NotifyCancellation(canceled, req.ActorRole)

	s.logger.Info("Cancel: reservation id=%d canceled by %s", id, req.ActorRole)
	return models.FromDomainReservation(canceled), nil
}

// UpdateStatus отмечает бронь выполненной или неявкой. Доступно только мастеру.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d to status=%s by user=%d", id, req.Status, req.ActorID)

	next, ok := domain.ParseReservationStatus(req.Status)
	if !ok || (next != domain.StatusCompleted && next != domain.StatusNoShow) {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: status must be completed or no_show", ErrInvalidInput)
	}

	var updated *domain.Reservation
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.getReservation(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		if res.StylistID != req.ActorID {
			s.logger.Warn("UpdateStatus: user=%d is not stylist of reservation id=%d", req.ActorID, id)
			return ErrAccessDenied
		}

		if !res.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for reservation id=%d", res.Status, next, id)
			return ErrInvalidTransition
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, next); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		res.Status = next
		updated = res
		return nil
	})
	if err != nil {
		return nil, normalizeError(err)
	}

	s.logger.Info("UpdateStatus: reservation id=%d is now %s", id, next)
	return models.FromDomainReservation(updated), nil
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}

// canAct проверяет, что пользователь в указанной роли относится к брони
func canAct(res *domain.Reservation, actorID int64, role domain.ActorRole) bool {
	switch role {
	case domain.ActorCustomer:
		return res.CustomerID == actorID
	case domain.ActorStylist:
		return res.StylistID == actorID
	default:
		return false
	}
}

func normalizeError(err error) error {
	for _, known := range []error{
		ErrReservationNotFound,
		ErrAccessDenied,
		ErrCannotCancel,
		ErrInvalidTransition,
		ErrInternal,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
