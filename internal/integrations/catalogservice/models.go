package catalogservice

// Service услуга из каталога мастера
type Service struct {
	ID              int64  `json:"id"`
	StylistID       int64  `json:"stylist_id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// servicesResponse ответ на запрос списка услуг
type servicesResponse struct {
	Services []Service `json:"services"`
}
