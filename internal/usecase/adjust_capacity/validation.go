package adjust_capacity

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StylistID <= 0 {
		return fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.Slot.Valid() {
		return fmt.Errorf("%w: slot %d out of range", ErrInvalidInput, int(req.Slot))
	}

	if req.Direction != DirectionUp && req.Direction != DirectionDown {
		return fmt.Errorf("%w: direction must be up or down", ErrInvalidInput)
	}

	return nil
}

// nextLimit возвращает новую вместимость; ok == false, если граница уже достигнута
func nextLimit(current, maxCapacity int, direction Direction) (int, bool) {
	switch direction {
	case DirectionUp:
		if current >= maxCapacity {
			return current, false
		}
		return current + 1, true
	default:
		if current <= 0 {
			return current, false
		}
		return current - 1, true
	}
}
