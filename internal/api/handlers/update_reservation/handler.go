package update_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	updateReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/update_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput         = "некорректные данные брони"
	msgNotFound             = "бронь не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotEditable          = "изменять можно только ожидающую бронь"
	msgNoServices           = "не выбрано ни одной услуги"
	msgServiceNotFound      = "услуга не найдена у мастера"
	msgHoliday              = "мастер не работает в выбранную дату"
	msgBeforeOpening        = "время начала раньше открытия"
	msgAfterClosing         = "бронь заканчивается после закрытия"
	msgPastCutoff           = "слишком поздно для бронирования этого времени"
	msgCapacityExceeded     = "выбранное время уже занято"
	msgBusy                 = "расписание мастера сейчас изменяется, попробуйте еще раз"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role := middleware.GetUserRole(r.Context())

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID, userID, role)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrAccessDenied):
			h.logger.Warn("PUT /reservations/{id} - Access denied: reservation_id=%d, user_id=%d", reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateReservation.ErrNotEditable):
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, updateReservation.ErrCapacityExceeded):
			h.logger.Warn("PUT /reservations/{id} - Capacity exceeded: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, updateReservation.ErrBusy):
			handlers.RespondConflict(w, msgBusy)

		case errors.Is(err, updateReservation.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateReservation.ErrNoServices):
			handlers.RespondBadRequest(w, msgNoServices)

		case errors.Is(err, updateReservation.ErrHoliday):
			handlers.RespondBadRequest(w, msgHoliday)

		case errors.Is(err, updateReservation.ErrStartBeforeOpening):
			handlers.RespondBadRequest(w, msgBeforeOpening)

		case errors.Is(err, updateReservation.ErrEndAfterClosing):
			handlers.RespondBadRequest(w, msgAfterClosing)

		case errors.Is(err, updateReservation.ErrPastCutoff):
			handlers.RespondBadRequest(w, msgPastCutoff)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated: reservation_id=%d, changes=%d", reservationID, len(result.Changes))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
