package notificationservice

// Kind тип уведомления
type Kind string

const (
	KindConfirmation Kind = "reservation_confirmed"
	KindCancellation Kind = "reservation_canceled"
	KindUpdate       Kind = "reservation_updated"
)

// Change изменение поля брони
type Change struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Reservation данные брони в уведомлении
type Reservation struct {
	ID           int64    `json:"id"`
	StylistID    int64    `json:"stylist_id"`
	CustomerID   int64    `json:"customer_id"`
	CustomerName string   `json:"customer_name"`
	Date         string   `json:"date"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	ServiceNames []string `json:"service_names"`
}

// Notification запрос на отправку уведомления
type Notification struct {
	Kind        Kind        `json:"kind"`
	Reservation Reservation `json:"reservation"`
	CanceledBy  string      `json:"canceled_by,omitempty"`
	Reason      *string     `json:"reason,omitempty"`
	Changes     []Change    `json:"changes,omitempty"`
}
