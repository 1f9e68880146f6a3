package domain

type ServiceType string

const (
	ServiceLesson          ServiceType = "LESSON"
	ServiceRental          ServiceType = "RENTAL"
	ServiceSubscription    ServiceType = "SUBSCRIPTION"
	ServiceEvent           ServiceType = "EVENT"
	ServicePrivateCoaching ServiceType = "PRIVATE_COACHING"
)

// ServiceTypes is the display order used by the service form select.
var ServiceTypes = []ServiceType{
	ServiceLesson, ServicePrivateCoaching, ServiceRental, ServiceSubscription, ServiceEvent,
}

var ServiceTypeLabel = map[ServiceType]string{
	ServiceLesson:          "Cours de skate",
	ServiceRental:          "Location de matériel",
	ServiceSubscription:    "Abonnement mensuel",
	ServiceEvent:           "Événement spécial",
	ServicePrivateCoaching: "Coaching privé",
}

func (t ServiceType) Label() string {
	if l, ok := ServiceTypeLabel[t]; ok {
		return l
	}
	return string(t)
}

// Service is a prestation sold to customers (lesson, rental, ...).
type Service struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Type            ServiceType `json:"type"`
	Description     string      `json:"description"`
	DurationMinutes int         `json:"durationMinutes"`
	BasePriceCents  int64       `json:"basePriceCents"`
	IsActive        bool        `json:"isActive"`
	CreatedAt       Timestamp   `json:"createdAt"`
	UpdatedAt       Timestamp   `json:"updatedAt"`
}

type ServiceRequest struct {
	Name            string      `json:"name"`
	Type            ServiceType `json:"type"`
	Description     string      `json:"description"`
	DurationMinutes int         `json:"durationMinutes"`
	BasePriceCents  int64       `json:"basePriceCents"`
	IsActive        bool        `json:"isActive"`
}

func (s Service) RecordID() int64 { return s.ID }
