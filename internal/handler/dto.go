package handler

import (
	"time"

	"github.com/pawadopt/pawadopt/internal/domain"
)

// DogDTO is the JSON representation of a dog.
type DogDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	AdoptionStatus string `json:"adoptionStatus"`
	Owner          int64  `json:"owner"`
	AdoptedBy      *int64 `json:"adoptedBy"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

func toDogDTO(d *domain.Dog) DogDTO {
	return DogDTO{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		AdoptionStatus: string(d.Status),
		Owner:          d.OwnerID,
		AdoptedBy:      d.AdoptedBy,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      d.UpdatedAt.Format(time.RFC3339),
	}
}

func toDogDTOs(dogs []domain.Dog) []DogDTO {
	dtos := make([]DogDTO, len(dogs))
	for i := range dogs {
		dtos[i] = toDogDTO(&dogs[i])
	}
	return dtos
}

// NotificationDTO is the JSON representation of a notification.
type NotificationDTO struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

func toNotificationDTO(n domain.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func toNotificationDTOs(notifications []domain.Notification) []NotificationDTO {
	dtos := make([]NotificationDTO, len(notifications))
	for i, n := range notifications {
		dtos[i] = toNotificationDTO(n)
	}
	return dtos
}
