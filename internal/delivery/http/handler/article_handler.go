package handler

import (
	"encoding/json"
	"net/http"

	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/usecase"
	"uplift-backend/pkg/response"
	"uplift-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type ArticleHandler struct {
	articleUsecase usecase.ArticleUsecase
	validator      *validator.CustomValidator
}

func NewArticleHandler(articleUsecase usecase.ArticleUsecase, validator *validator.CustomValidator) *ArticleHandler {
	return &ArticleHandler{
		articleUsecase: articleUsecase,
		validator:      validator,
	}
}

func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articleUsecase.ListArticles(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get articles")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Articles retrieved successfully", articles.Articles, &response.Meta{Total: articles.Total})
}

func (h *ArticleHandler) ListArticlesByUsername(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articleUsecase.ListArticlesByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, err, "Failed to get articles")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Articles retrieved successfully", articles.Articles, &response.Meta{Total: articles.Total})
}

func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	article, err := h.articleUsecase.CreateArticle(r.Context(), requester, &req)
	if err != nil {
		writeError(w, err, "Failed to create article")
		return
	}

	response.Success(w, http.StatusCreated, "Article created successfully", article)
}

func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	articleID, ok := pathUUID(w, r, "article")
	if !ok {
		return
	}

	var req dto.ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	article, err := h.articleUsecase.UpdateArticle(r.Context(), requester, articleID, &req)
	if err != nil {
		writeError(w, err, "Failed to update article")
		return
	}

	response.Success(w, http.StatusOK, "Article updated successfully", article)
}

func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	articleID, ok := pathUUID(w, r, "article")
	if !ok {
		return
	}

	if err := h.articleUsecase.DeleteArticle(r.Context(), requester, articleID); err != nil {
		writeError(w, err, "Failed to delete article")
		return
	}

	response.Success(w, http.StatusOK, "Article deleted successfully", nil)
}

func (h *ArticleHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	articleID, ok := pathUUID(w, r, "article")
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	article, err := h.articleUsecase.AddReview(r.Context(), requester, articleID, &req)
	if err != nil {
		writeError(w, err, "Failed to add review")
		return
	}

	response.Success(w, http.StatusCreated, "Review added successfully", article)
}
