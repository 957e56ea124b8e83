package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"

	"feedback-board-server/models"
	"feedback-board-server/storage"
	"feedback-board-server/utils"
)

type RegisterUserInput struct {
	Email    string `json:"email" validate:"required,max=256,email"`
	Name     string `json:"name" validate:"required,max=256"`
	Password string `json:"password" validate:"required,min=8,max=256"`
}

// Register creates a user keyed by unique email. Duplicate registration is
// reported with its own error code so clients can tell it apart from a
// malformed request.
func (s *Server) Register(ctx iris.Context) {
	var input RegisterUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	_, exists, err := s.Store.Users().FindByEmail(input.Email)
	if err != nil {
		s.Log.WithError(err).Error("user lookup failed")
		utils.CreateInternalServerError(ctx)
		return
	}
	if exists {
		utils.JSONError(ctx, http.StatusBadRequest, "email_taken", "Email is already registered")
		return
	}

	hashedPassword, err := hashAndSaltPassword(input.Password)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user := models.User{
		Email:    strings.ToLower(input.Email),
		Name:     input.Name,
		Password: hashedPassword,
	}
	if err := s.Store.Users().Insert(&user); err != nil {
		s.insertError(ctx, err)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

// insertError maps store insert failures onto the HTTP taxonomy.
func (s *Server) insertError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrConstraint):
		utils.JSONError(ctx, http.StatusBadRequest, "email_taken", "Email is already registered")
	case storage.IsValidation(err):
		utils.JSONError(ctx, http.StatusBadRequest, "validation_error", err.Error())
	default:
		s.Log.WithError(err).Error("store insert failed")
		utils.CreateInternalServerError(ctx)
	}
}

func hashAndSaltPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
