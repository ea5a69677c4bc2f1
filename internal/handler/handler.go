package handler

import "tripmate/internal/service"

type Handlers struct {
	Trip *TripHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Trip: NewTripHandler(services.Trip),
	}
}
