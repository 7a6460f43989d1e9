package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/carecompass/carecompass-api/geo"
	"github.com/carecompass/carecompass-api/logmodule"
	"github.com/carecompass/carecompass-api/schema"
	"github.com/carecompass/carecompass-api/store"
	"github.com/carecompass/carecompass-api/triage"
)

// maxRequestBody bounds the JSON body so base64 images fit but nothing
// unreasonable does
const maxRequestBody = 10 << 20

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Triage pipeline
	pipeline *triage.Pipeline

	// Facility registry, loaded once and never mutated
	registry []schema.Facility

	registryStore store.FacilityStore

	// Location resolution
	resolver geo.LocationResolver

	// When the upstream model is unreachable, answer with the fallback
	// classifier instead of a 500
	useFallback bool
}

// NewServer new instance of server
func NewServer(
	pipeline *triage.Pipeline,
	registryStore store.FacilityStore,
	resolver geo.LocationResolver,
	useFallback bool) (*Server, error) {
	registry, err := registryStore.ListFacilities()
	if err != nil {
		return nil, err
	}

	log.Infof("loaded facility registry with %d records", len(registry))

	return &Server{
		pipeline:      pipeline,
		registry:      registry,
		registryStore: registryStore,
		resolver:      resolver,
		useFallback:   useFallback,
	}, nil
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOrigins:     []string{viper.GetString("server.cors.origin")},
		MaxAge:           12 * time.Hour,
	}))
	apiRoute.Use(s.rateLimitMiddleware())
	apiRoute.Use(limitRequestBody(maxRequestBody))

	apiRoute.GET("/information", s.information)

	triageRoute := apiRoute.Group("/triage")
	{
		triageRoute.POST("/analyze", s.analyzeTriage)
	}

	facilityRoute := apiRoute.Group("/facilities")
	{
		facilityRoute.GET("", s.listFacilities)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func limitRequestBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

func (s *Server) healthz(c *gin.Context) {
	if err := s.registryStore.Ping(); err != nil {
		log.Error(err)
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"system_version": "CareCompass 0.1",
			"facilities":     len(s.registry),
		},
	})
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	c.JSON(code, obj)
	c.Abort()
}
