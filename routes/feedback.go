package routes

import (
	"errors"
	"net/http"

	"github.com/kataras/iris/v12"

	"feedback-board-server/models"
	"feedback-board-server/storage"
	"feedback-board-server/utils"
)

type CreateFeedbackInput struct {
	UserID    string `json:"userId" validate:"required,max=64"`
	UserName  string `json:"userName" validate:"max=256"`
	UserEmail string `json:"userEmail" validate:"max=256"`
	Rating    int    `json:"rating" validate:"required"`
	Comment   string `json:"comment" validate:"required"`
	Category  string `json:"category"`
}

type UpdateFeedbackInput struct {
	Status        *string `json:"status"`
	AdminResponse *string `json:"adminResponse"`
}

// CreateFeedback records a submission. The status is always the initial
// "open" regardless of what the client sends; unknown categories collapse
// to the default.
func (s *Server) CreateFeedback(ctx iris.Context) {
	var input CreateFeedbackInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	fb := models.Feedback{
		UserID:    input.UserID,
		UserName:  input.UserName,
		UserEmail: input.UserEmail,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Category:  models.NormalizeCategory(input.Category),
		Status:    models.StatusOpen,
	}
	if err := s.Store.Feedback().Insert(&fb); err != nil {
		if storage.IsValidation(err) {
			utils.JSONError(ctx, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		s.Log.WithError(err).Error("feedback insert failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{
		"message":    "Feedback submitted successfully",
		"feedbackId": fb.ID,
	})
}

// ListFeedback returns matching records newest-first. "all" (or absence)
// on either filter means no filtering on that field.
func (s *Server) ListFeedback(ctx iris.Context) {
	filter := map[string]interface{}{}
	if category := ctx.URLParamDefault("category", ""); category != "" && category != "all" {
		filter["category"] = category
	}
	if status := ctx.URLParamDefault("status", ""); status != "" && status != "all" {
		filter["status"] = status
	}
	limit := ctx.URLParamIntDefault("limit", 0)

	list, err := s.Store.Feedback().Find(filter, "-createdAt", limit)
	if err != nil {
		s.Log.WithError(err).Error("feedback query failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(list)
}

// UpdateFeedback applies a partial update to status and/or adminResponse.
// Admin-guarded by the router.
func (s *Server) UpdateFeedback(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "Feedback id must be numeric")
		return
	}

	var input UpdateFeedbackInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	fields := map[string]interface{}{}
	if input.Status != nil && *input.Status != "" {
		if !models.ValidStatus(*input.Status) {
			utils.JSONError(ctx, http.StatusBadRequest, "validation_error", "Unknown status value")
			return
		}
		fields["status"] = *input.Status
	}
	if input.AdminResponse != nil {
		fields["admin_response"] = *input.AdminResponse
	}
	if len(fields) == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "validation_error", "No fields to update")
		return
	}

	before, err := s.Store.Feedback().Get(id)
	if err != nil {
		s.feedbackLookupError(ctx, err)
		return
	}

	if err := s.Store.Feedback().Update(id, fields); err != nil {
		s.feedbackMutationError(ctx, err)
		return
	}

	after, _ := s.Store.Feedback().Get(id)
	utils.Audit(ctx, s.Store, "feedback.update", "feedback", id, before, after)

	ctx.JSON(iris.Map{"message": "Feedback updated successfully"})
}

// DeleteFeedback removes a record permanently. Admin-guarded by the router.
func (s *Server) DeleteFeedback(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "Feedback id must be numeric")
		return
	}

	before, err := s.Store.Feedback().Get(id)
	if err != nil {
		s.feedbackLookupError(ctx, err)
		return
	}

	if err := s.Store.Feedback().Delete(id); err != nil {
		s.feedbackMutationError(ctx, err)
		return
	}

	utils.Audit(ctx, s.Store, "feedback.delete", "feedback", id, before, nil)

	ctx.JSON(iris.Map{"message": "Feedback deleted successfully"})
}

func (s *Server) feedbackLookupError(ctx iris.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "Feedback not found")
		return
	}
	s.Log.WithError(err).Error("feedback lookup failed")
	utils.CreateInternalServerError(ctx)
}

func (s *Server) feedbackMutationError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "Feedback not found")
	case storage.IsValidation(err):
		utils.JSONError(ctx, http.StatusBadRequest, "validation_error", err.Error())
	default:
		s.Log.WithError(err).Error("feedback mutation failed")
		utils.CreateInternalServerError(ctx)
	}
}
