package api

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/samhotchkiss/sindicato-comms/internal/generation"
	commsmw "github.com/samhotchkiss/sindicato-comms/internal/middleware"
	"github.com/samhotchkiss/sindicato-comms/internal/render"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
	"github.com/samhotchkiss/sindicato-comms/internal/ws"
)

var startTime = time.Now()

type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Journal   bool   `json:"journal"`
	AI        bool   `json:"ai"`
	Revision  uint64 `json:"revision"`
}

// Dependencies are the collaborators the router wires into handlers. Hub
// may be nil, in which case /ws is not served.
type Dependencies struct {
	Store          *store.Store
	Generation     *generation.Service
	Tracker        *generation.Tracker
	Renderer       *render.Renderer
	Hub            *ws.Hub
	ShareSiteURL   string
	AllowedOrigins []string
	Journaled      bool
}

func NewRouter(deps Dependencies) http.Handler {
	if deps.Generation == nil {
		deps.Generation = generation.NewService(nil)
	}
	if deps.Tracker == nil {
		deps.Tracker = generation.NewTracker()
	}
	if deps.Renderer == nil {
		deps.Renderer = render.NewRenderer()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.SetHeader("Content-Type", "application/json"))
	r.Use(commsmw.ActingSecretariat(deps.Store.ActingSecretariat))

	r.Get("/health", handleHealth(deps))
	r.Get("/", handleRoot)
	if deps.Hub != nil {
		r.Handle("/ws", &ws.Handler{Hub: deps.Hub, AllowedOrigins: deps.AllowedOrigins})
	}

	sessionHandler := &SessionHandler{Store: deps.Store}
	activityHandler := &ActivityHandler{Store: deps.Store}
	pressHandler := &PressReleaseHandler{Store: deps.Store, Renderer: deps.Renderer}
	contactHandler := &ContactHandler{Store: deps.Store}
	channelHandler := &ChannelHandler{Store: deps.Store}
	generationHandler := &GenerationHandler{Store: deps.Store, Service: deps.Generation, Tracker: deps.Tracker}
	viewHandler := &ViewHandler{Store: deps.Store, Tracker: deps.Tracker}
	shareHandler := &ShareHandler{SiteURL: deps.ShareSiteURL}

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", sessionHandler.Get)
		r.Put("/session", sessionHandler.Put)
		r.Get("/vocabularies", handleVocabularies)

		r.Get("/views", viewHandler.List)
		r.Get("/views/{view}", viewHandler.Get)

		r.Route("/activities", func(r chi.Router) {
			r.Use(commsmw.RequireConfirmation)
			r.Get("/", activityHandler.List)
			r.Post("/", activityHandler.Create)
			r.Get("/{id}", activityHandler.Get)
			r.Put("/{id}", activityHandler.Update)
			r.Delete("/{id}", activityHandler.Delete)
		})

		r.Route("/press-releases", func(r chi.Router) {
			r.Get("/", pressHandler.List)
			r.Post("/", pressHandler.Create)
			r.Get("/draft", pressHandler.Draft)
			r.Post("/preview", pressHandler.Preview)
			r.Get("/{id}", pressHandler.Get)
			r.Put("/{id}", pressHandler.Update)
			r.Delete("/{id}", pressHandler.Delete)
			r.Get("/{id}/pdf", pressHandler.PDF)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Use(commsmw.RequireConfirmation)
			r.Get("/", contactHandler.List)
			r.Post("/", contactHandler.Create)
			r.Get("/{id}", contactHandler.Get)
			r.Put("/{id}", contactHandler.Update)
			r.Delete("/{id}", contactHandler.Delete)
		})

		r.Route("/channels", func(r chi.Router) {
			r.Use(commsmw.RequireConfirmation)
			r.Get("/", channelHandler.List)
			r.Post("/", channelHandler.Create)
			r.Get("/{id}", channelHandler.Get)
			r.Put("/{id}", channelHandler.Update)
			r.Delete("/{id}", channelHandler.Delete)
			r.Get("/{id}/messages", channelHandler.ListMessages)
			r.Post("/{id}/messages", channelHandler.SendMessage)
		})

		r.Get("/analytics", viewHandler.Analytics)

		r.Post("/generation/press-opportunities", generationHandler.PressOpportunities)
		r.Post("/generation/social", generationHandler.SocialPost)
		r.Get("/generation/results/{key}", generationHandler.Result)

		r.Post("/share", shareHandler.Build)
		r.Get("/metrics", handleMetrics)
	})

	return r
}

func handleHealth(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:    "ok",
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			Version:   getVersion(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Journal:   deps.Journaled,
			AI:        deps.Generation.Available(),
			Revision:  deps.Store.Version(),
		}

		_ = json.NewEncoder(w).Encode(resp)
	}
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{
		"name":    "Sindicato Comms",
		"tagline": "Panel de comunicación interna y externa",
		"health":  "/health",
		"views":   "/api/views",
	})
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
