package dto

type ChatbotRequest struct {
	Query string `json:"query" validate:"required"`
}

type ChatbotResponse struct {
	Questions []string `json:"questions"`
}
