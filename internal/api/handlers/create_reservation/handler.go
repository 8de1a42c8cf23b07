package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_reservation"
)

const (
	msgInvalidStylistID   = "некорректный ID мастера"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные брони"
	msgNoServices         = "не выбрано ни одной услуги"
	msgServiceNotFound    = "услуга не найдена у мастера"
	msgHoliday            = "мастер не работает в выбранную дату"
	msgBeforeOpening      = "время начала раньше открытия"
	msgAfterClosing       = "бронь заканчивается после закрытия"
	msgPastCutoff         = "слишком поздно для бронирования этого времени"
	msgCapacityExceeded   = "выбранное время уже занято"
	msgBusy               = "расписание мастера сейчас изменяется, попробуйте еще раз"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/stylists/{stylistId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("POST /stylists/{id}/reservations - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /stylists/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stylists/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(stylistID, userID)
	if err != nil {
		h.logger.Warn("POST /stylists/{id}/reservations - Failed to parse request: %v", err)
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
		case errors.Is(err, createReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /stylists/{id}/reservations - Capacity exceeded: stylist_id=%d, user_id=%d", stylistID, userID)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, createReservation.ErrBusy):
			h.logger.Warn("POST /stylists/{id}/reservations - Schedule busy: stylist_id=%d", stylistID)
			handlers.RespondConflict(w, msgBusy)

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /stylists/{id}/reservations - Service not found: stylist_id=%d", stylistID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrNoServices):
			handlers.RespondBadRequest(w, msgNoServices)

		case errors.Is(err, createReservation.ErrHoliday):
			handlers.RespondBadRequest(w, msgHoliday)

		case errors.Is(err, createReservation.ErrStartBeforeOpening):
			handlers.RespondBadRequest(w, msgBeforeOpening)

		case errors.Is(err, createReservation.ErrEndAfterClosing):
			handlers.RespondBadRequest(w, msgAfterClosing)

		case errors.Is(err, createReservation.ErrPastCutoff):
			handlers.RespondBadRequest(w, msgPastCutoff)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /stylists/{id}/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /stylists/{id}/reservations - Failed to create reservation: stylist_id=%d, user_id=%d, error=%v",
				stylistID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /stylists/{id}/reservations - Reservation created: reservation_id=%d, stylist_id=%d, user_id=%d",
		result.ID, stylistID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
