package domain

type Spot struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	ZipCode     string    `json:"zipCode"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	IsIndoor    bool      `json:"isIndoor"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

type SpotRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	ZipCode     string  `json:"zipCode"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	IsIndoor    bool    `json:"isIndoor"`
	IsActive    bool    `json:"isActive"`
}

func (s Spot) RecordID() int64 { return s.ID }
