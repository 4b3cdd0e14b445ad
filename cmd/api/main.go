package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"smv-nearby/docs"
	"smv-nearby/internal/config"
	"smv-nearby/internal/handler"
	"smv-nearby/internal/provider"
	"smv-nearby/internal/repository"
	"smv-nearby/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			SMV Nearby API
//	@version		1.0
//	@description	Nearest school, bus stop and mall for the SMV e-rickshaw map widget.
//	@BasePath		/
func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	setupLogger(cfg.LogLevel, cfg.LogPretty)

	// Database connection, optional unless the postgis provider is selected
	var repo *repository.Repository
	if cfg.DBSource != "" {
		conn, err := pgxpool.New(context.Background(), cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		repo = repository.NewRepository(conn)
		if err := repo.CreateSchema(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("cannot create schema")
		}
	}

	// Outbound requests share one client; the resolver enforces its own deadline.
	httpClient := provider.NewHTTPClient(cfg.UserAgent, cfg.ResolveTimeout+5*time.Second)

	var spatial provider.Spatial
	switch cfg.Provider {
	case config.ProviderPostGIS:
		spatial = provider.NewPostGISProvider(repo)
	default:
		spatial = provider.NewOverpassProvider(cfg.OverpassURL, httpClient)
	}
	log.Info().Str("provider", spatial.Name()).Msg("spatial provider selected")

	// Initialize layers
	resolver := service.NewNearestPlaceResolver(spatial, service.ResolverConfig{
		DefaultRadiusKm: cfg.DefaultRadiusKm,
		Timeout:         cfg.ResolveTimeout,
		CacheTTL:        cfg.CacheTTL,
		H3Resolution:    cfg.H3Resolution,
	})
	reverseGeocodeService := service.NewReverseGeoCodeService(provider.NewNominatimClient(cfg.NominatimURL, httpClient))
	boards := service.NewBoards(resolver, reverseGeocodeService, cfg.DefaultRadiusKm, cfg.SessionIdleTTL)

	nearbyHandler := handler.NewNearbyHandler(resolver)
	reverseGeocodeHandler := handler.NewReverseGeocodeHandler(reverseGeocodeService)
	sessionHandler := handler.NewSessionHandler(boards)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/nearby", nearbyHandler.Nearest)
	r.GET("/nearby/all", nearbyHandler.All)
	r.GET("/reverse-geocode", reverseGeocodeHandler.ReverseGeocode)

	if repo != nil {
		placeSearchHandler := handler.NewPlaceSearchHandler(service.NewPlaceSearchService(repo))
		r.GET("/places", placeSearchHandler.Search)
		r.GET("/places/:id", placeSearchHandler.Get)
	} else {
		log.Warn().Msg("DB_SOURCE not set, /places endpoints are disabled")
	}

	r.POST("/sessions", sessionHandler.Create)
	r.GET("/sessions/:id", sessionHandler.Get)
	r.PUT("/sessions/:id/location", sessionHandler.UpdateLocation)
	r.DELETE("/sessions/:id", sessionHandler.Delete)

	docs.SwaggerInfo.Host = cfg.ServerAddress
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Info().Str("address", cfg.ServerAddress).Msg("starting server")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty || isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
