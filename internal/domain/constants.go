package domain

// Slot grid
const (
	SlotMinutes = 30
	SlotsPerDay = 24 * 60 / SlotMinutes
)

// Default schedule values
const (
	DefaultOpeningTime          = "09:00"
	DefaultClosingTime          = "18:00"
	DefaultMaxCapacity          = 2
	CapacityFloor               = 1
	DefaultBookingLeadMinutes   = 60 // 1 hour
	MaxReservationDurationHours = 12
	MaxCustomerNameLength       = 200
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// UncountedStatuses статусы, которые не занимают место в слоте
var UncountedStatuses = []ReservationStatus{
	StatusCanceled,
	StatusNoShow,
}

// CountedStatuses статусы, которые занимают место в слоте
var CountedStatuses = []ReservationStatus{
	StatusPending,
	StatusCompleted,
}
