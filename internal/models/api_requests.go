package models

type CreateStatsRequest struct {
	OwnerID string `json:"owner_id" validate:"required,uuid4"`
}

type AddTimeRequest struct {
	Minutes float64 `json:"minutes" validate:"required,gt=0"`
}

type AddTimeResponse struct {
	OwnerID   string  `json:"owner_id"`
	TimeToday float64 `json:"time_today"`
	TimeTotal float64 `json:"time_total"`
}
