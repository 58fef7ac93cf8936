package handler

import (
	"encoding/json"
	"net/http"

	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/usecase"
	"uplift-backend/pkg/response"
	"uplift-backend/pkg/validator"
)

type ChatbotHandler struct {
	chatbotUsecase usecase.ChatbotUsecase
	validator      *validator.CustomValidator
}

func NewChatbotHandler(chatbotUsecase usecase.ChatbotUsecase, validator *validator.CustomValidator) *ChatbotHandler {
	return &ChatbotHandler{
		chatbotUsecase: chatbotUsecase,
		validator:      validator,
	}
}

func (h *ChatbotHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	answer, err := h.chatbotUsecase.Ask(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to answer query")
		return
	}

	response.Success(w, http.StatusOK, "Questions retrieved successfully", answer)
}
