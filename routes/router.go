package routes

import (
	"github.com/kataras/iris/v12"
	log "github.com/sirupsen/logrus"

	"feedback-board-server/storage"
	"feedback-board-server/utils"
)

// Server holds the handlers' dependencies: the store client, the session
// manager, and the one-time elevation token for creating additional admins.
type Server struct {
	Store      *storage.Client
	Sessions   *utils.Sessions
	SetupToken string
	Log        *log.Logger
}

func NewServer(store *storage.Client, sessions *utils.Sessions, setupToken string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Server{
		Store:      store,
		Sessions:   sessions,
		SetupToken: setupToken,
		Log:        logger,
	}
}

// Attach registers every route on the app. Feedback reads are public,
// feedback mutations and the admin surface require an admin session.
func (s *Server) Attach(app *iris.Application) {
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	users := app.Party("/api/users")
	{
		users.Post("/register", s.Register)
	}

	admin := app.Party("/api/admin")
	{
		admin.Post("/setup", s.Setup)
		admin.Post("/login", s.Login)
		admin.Post("/logout", s.Logout)
		admin.Get("/me", s.Sessions.RequireAdmin, s.Me)
		admin.Get("/stats", s.Sessions.RequireAdmin, s.Stats)
		admin.Get("/activity", s.Sessions.RequireAdmin, s.Activity)
	}

	feedback := app.Party("/api/feedback")
	{
		feedback.Post("/", s.CreateFeedback)
		feedback.Get("/", s.ListFeedback)
		feedback.Put("/{id:uint}", s.Sessions.RequireAdmin, s.UpdateFeedback)
		feedback.Delete("/{id:uint}", s.Sessions.RequireAdmin, s.DeleteFeedback)
	}
}
