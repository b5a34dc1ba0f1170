package dto

type ConnectRequest struct {
	Code string `json:"code" binding:"required"`
}

type DisconnectResponse struct {
	Success bool `json:"success"`
}
