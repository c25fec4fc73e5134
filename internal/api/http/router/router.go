package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/dtroode/listenloud-server/internal/api/http/handler"
	"github.com/dtroode/listenloud-server/internal/api/http/middleware"
	"github.com/dtroode/listenloud-server/internal/api/http/response"
	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// Services groups the use-cases exposed over HTTP.
type Services struct {
	Auth     handler.AuthService
	Music    handler.MusicService
	Users    handler.UserService
	Tags     handler.TagService
	Messages handler.MessageService
	Media    handler.MediaService
}

// Options tune request handling.
type Options struct {
	AllowedOrigins []string
	MaxUploadSize  int64
}

// Router builds the HTTP handler tree for the listenloud API.
type Router struct {
	services       Services
	authenticator  middleware.Authenticator
	db             handler.Pinger
	contextManager model.ContextManager
	opts           Options
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	services Services,
	authenticator middleware.Authenticator,
	db handler.Pinger,
	contextManager model.ContextManager,
	opts Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		authenticator:  authenticator,
		db:             db,
		contextManager: contextManager,
		opts:           opts,
		logger:         logger,
	}
}

// Register wires middleware and every route.
//
// Auth, media and the index are public. Everything else requires a user
// resolved from a bearer access token.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authenticator, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.Recoverer)
	mux.Use(logging.Handle)
	mux.Use(cors.New(cors.Options{
		AllowedOrigins: r.opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: true,
	}).Handler)
	mux.Use(authenticate.Handle)

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Resource cannot be found!")
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method is not supported!")
	})

	index := handler.NewIndex(r.db, r.logger)
	mux.Get("/healthz", index.Health)

	mux.Route("/api/v1", func(api chi.Router) {
		api.Get("/", index.Root)
		r.registerAuthRoutes(api)
		r.registerMediaRoutes(api)

		api.Group(func(protected chi.Router) {
			protected.Use(authenticate.RequireUser)
			r.registerMusicRoutes(protected)
			r.registerUserRoutes(protected)
			r.registerTagRoutes(protected)
			r.registerMessageRoutes(protected)
		})
	})

	return mux
}

func (r *Router) registerAuthRoutes(api chi.Router) {
	h := handler.NewAuth(r.services.Auth, r.opts.MaxUploadSize, r.logger)
	api.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", h.Register)
		auth.Post("/authenticate", h.Authenticate)
		auth.Post("/refresh-token", h.RefreshToken)
		auth.Post("/logout", h.Logout)
	})
}

func (r *Router) registerMediaRoutes(api chi.Router) {
	h := handler.NewMedia(r.services.Media, r.logger)
	api.Get("/media/{kind}/{name}", h.Download)
}

func (r *Router) registerMusicRoutes(api chi.Router) {
	h := handler.NewMusic(r.services.Music, r.contextManager, r.opts.MaxUploadSize, r.logger)
	api.Route("/music", func(music chi.Router) {
		music.Post("/", h.Create)
		music.Get("/", h.List)
		music.Delete("/", h.DeleteAll)
		music.Post("/find", h.FindByTags)
		music.Post("/subscriptions", h.Feed)
		music.Get("/{id}", h.Get)
		music.Put("/{id}", h.Update)
		music.Delete("/{id}", h.Delete)
		music.Post("/{id}/likes", h.ToggleLike)
		music.Post("/{id}/save", h.Save)
	})
}

func (r *Router) registerUserRoutes(api chi.Router) {
	h := handler.NewUser(r.services.Users, r.services.Music, r.services.Tags, r.contextManager, r.opts.MaxUploadSize, r.logger)
	api.Route("/users", func(users chi.Router) {
		users.Get("/", h.Profile)
		users.Put("/", h.Update)
		users.Get("/tags", h.Tags)
		users.Post("/tags", h.SetTags)
		users.Get("/uploaded", h.Uploaded)
		users.Get("/saved", h.Saved)
		users.Delete("/saved", h.ClearSaved)
		users.Delete("/saved/{id}", h.RemoveSaved)
		users.Get("/relevant", h.Relevant)
		users.Get("/subscriptions", h.Subscriptions)
		users.Get("/subscribers", h.Subscribers)
		users.Post("/subscribe/{id}", h.Subscribe)
		users.Delete("/unsubscribe", h.UnsubscribeMany)
		users.Delete("/unsubscribe/{id}", h.Unsubscribe)
	})
}

func (r *Router) registerTagRoutes(api chi.Router) {
	h := handler.NewTag(r.services.Tags, r.contextManager, r.logger)
	api.Route("/tags", func(tags chi.Router) {
		tags.Get("/", h.List)
		tags.Get("/{id}", h.ForTrack)
		tags.Delete("/{id}", h.ClearTrack)
	})
}

func (r *Router) registerMessageRoutes(api chi.Router) {
	h := handler.NewMessage(r.services.Messages, r.contextManager, r.logger)
	api.Route("/messages", func(messages chi.Router) {
		messages.Post("/send/{id}", h.Send)
		messages.Get("/dialogues", h.Dialogues)
		messages.Get("/dialogues/{id}", h.Conversation)
		messages.Delete("/dialogues/{id}", h.DeleteConversation)
		messages.Delete("/dialogues/{id}/{messageId}", h.Delete)
		messages.Put("/dialogues/{id}/{messageId}", h.Edit)
	})
}
