package bootstrap

import (
	"net/http"

	httpapi "github.com/GoSim-25-26J-441/portfolio-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/domain"
	dochttp "github.com/GoSim-25-26J-441/portfolio-backend/internal/documents/http"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Store          storage.Store
	AllowedOrigins []string
	EnableMessages bool
	NotFoundStatus int
	// Options apply to every collection handler.
	Options []dochttp.Option
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.Recovery(),
		middleware.CORS(dep.AllowedOrigins),
		middleware.ErrorHandler(),
	)

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	opts := dep.Options
	if dep.NotFoundStatus == http.StatusNotFound {
		opts = append([]dochttp.Option{dochttp.WithNotFoundStatus(http.StatusNotFound)}, opts...)
	}

	projects := dochttp.New(dep.Store, domain.CollectionProjects, opts...)
	projects.Register(r.Group("/projects"), "projectId")

	if dep.EnableMessages {
		messages := dochttp.New(dep.Store, domain.CollectionMessages, opts...)
		messages.Register(r.Group("/messages"), "messageId")
	}

	return r
}
