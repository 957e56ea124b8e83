package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"

	"feedback-board-server/models"
	"feedback-board-server/utils"
)

type SetupAdminInput struct {
	Email    string `json:"email" validate:"required,max=256,email"`
	Name     string `json:"name" validate:"required,max=256"`
	Password string `json:"password" validate:"required,min=8,max=256"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Setup creates an administrator account. The first admin can be created
// freely; once one exists, callers must prove elevation with either a valid
// admin session or the configured setup token.
func (s *Server) Setup(ctx iris.Context) {
	adminExists, err := s.Store.Users().AdminExists()
	if err != nil {
		s.Log.WithError(err).Error("admin lookup failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	if adminExists && !s.setupAuthorized(ctx) {
		utils.JSONError(ctx, http.StatusBadRequest, "already_initialized",
			"An admin already exists; creating more requires an admin session or the setup token")
		return
	}

	var input SetupAdminInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	_, exists, err := s.Store.Users().FindByEmail(input.Email)
	if err != nil {
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

	admin := models.User{
		Email:    strings.ToLower(input.Email),
		Name:     input.Name,
		IsAdmin:  true,
		Password: hashedPassword,
	}
	if err := s.Store.Users().Insert(&admin); err != nil {
		s.insertError(ctx, err)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{
		"message": "Admin user created successfully",
		"userId":  admin.ID,
	})
}

func (s *Server) setupAuthorized(ctx iris.Context) bool {
	if claims, _, ok := s.Sessions.FromRequest(ctx); ok && claims.IsAdmin {
		return true
	}
	if s.SetupToken != "" && ctx.GetHeader("X-Setup-Token") == s.SetupToken {
		return true
	}
	return false
}

// Login authenticates an administrator and issues the session cookie.
// Unknown email, non-admin account, and wrong password all return the same
// message so the endpoint leaks nothing about which one it was.
func (s *Server) Login(ctx iris.Context) {
	var input LoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	const errorMsg = "Invalid email or password."

	user, exists, err := s.Store.Users().FindByEmail(input.Email)
	if err != nil {
		s.Log.WithError(err).Error("user lookup failed")
		utils.CreateInternalServerError(ctx)
		return
	}
	if !exists || !user.IsAdmin {
		utils.JSONError(ctx, http.StatusUnauthorized, "unauthorized", errorMsg)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.JSONError(ctx, http.StatusUnauthorized, "unauthorized", errorMsg)
		return
	}

	token, err := s.Sessions.Issue(ctx.Request().Context(), user)
	if err != nil {
		s.Log.WithError(err).Error("session issue failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.SetCookie(&http.Cookie{
		Name:     utils.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	ctx.JSON(iris.Map{
		"message": "Login successful",
		"userId":  user.ID,
	})
}

// Logout revokes the session allowlist entry and clears the cookie.
func (s *Server) Logout(ctx iris.Context) {
	claims, token, ok := s.Sessions.FromRequest(ctx)
	if ok {
		if err := s.Sessions.Revoke(ctx.Request().Context(), token); err != nil {
			s.Log.WithError(err).WithField("userId", claims.ID).Warn("session revoke failed")
		}
	}
	ctx.SetCookie(&http.Cookie{
		Name:     utils.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	ctx.JSON(iris.Map{"message": "Logged out"})
}

// Me returns the authenticated admin's identity.
func (s *Server) Me(ctx iris.Context) {
	claims, _, _ := s.Sessions.FromRequest(ctx)
	ctx.JSON(iris.Map{
		"userId":  claims.ID,
		"email":   claims.Email,
		"isAdmin": claims.IsAdmin,
	})
}

// Stats summarizes the feedback board for the dashboard header.
func (s *Server) Stats(ctx iris.Context) {
	feedback := s.Store.Feedback()

	total, err := feedback.Count(nil)
	if err != nil {
		s.Log.WithError(err).Error("stats query failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	byStatus := iris.Map{}
	for _, status := range []string{models.StatusOpen, models.StatusReviewed, models.StatusClosed} {
		count, err := feedback.Count(map[string]interface{}{"status": status})
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		byStatus[status] = count
	}

	byCategory := iris.Map{}
	for _, category := range []string{
		models.CategoryGeneral, models.CategoryFeature, models.CategoryBug,
		models.CategoryUI, models.CategoryPerformance,
	} {
		count, err := feedback.Count(map[string]interface{}{"category": category})
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		byCategory[category] = count
	}

	new7d, _ := feedback.CountSince(time.Now().AddDate(0, 0, -7))
	new30d, _ := feedback.CountSince(time.Now().AddDate(0, 0, -30))

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"total":       total,
			"by_status":   byStatus,
			"by_category": byCategory,
			"new_7d":      new7d,
			"new_30d":     new30d,
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}

// Activity returns the most recent audit entries.
func (s *Server) Activity(ctx iris.Context) {
	logs, err := s.Store.Audits().Recent(ctx.URLParamIntDefault("limit", 100))
	if err != nil {
		s.Log.WithError(err).Error("activity query failed")
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": logs, "meta": iris.Map{}, "links": iris.Map{}})
}
