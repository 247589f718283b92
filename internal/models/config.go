package models

type FrontDeskConfig struct {
	ID        int64  `json:"id"`
	OpenTime  string `json:"open_time"`  // format: "HH:MM:SS"
	CloseTime string `json:"close_time"` // format: "HH:MM:SS"
}

type UpdateFrontDeskConfigRequest struct {
	OpenTime  string `json:"open_time" validate:"required"`
	CloseTime string `json:"close_time" validate:"required"`
}
