// Package api exposes the Linguista REST API over gin.
package api

import (
	"net/http"

	"linguista/internal/api/middleware"
	"linguista/internal/domain"
	"linguista/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Deps carries the services the API is built on
type Deps struct {
	Auth        *service.AuthService
	Profiles    *service.ProfileService
	Languages   *service.LanguageService
	Vocabulary  *service.VocabularyService
	WordTypes   *service.WordTypeService
	Favorites   *service.FavoriteService
	Collections *service.CollectionService
	Exercises   *service.ExerciseService
	Admin       *service.AdminService

	Logger         *zap.Logger
	AllowedOrigins []string
}

// linkRoutes maps the word relation path segments to their kinds
var linkRoutes = map[string]domain.LinkKind{
	"synonyms": domain.LinkSynonym,
	"antonyms": domain.LinkAntonym,
	"similars": domain.LinkSimilar,
}

// NewServer builds the HTTP handler with every route registered
func NewServer(deps Deps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	useJSONFieldNames()

	engine := gin.New()
	engine.Use(
		middleware.RequestLogger(deps.Logger),
		middleware.Metrics(),
		gin.Recovery(),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handler{logger: deps.Logger}
	v1 := engine.Group("/api/v1")

	authH := &authHandler{handler: h, auth: deps.Auth}
	authGroup := v1.Group("/auth")
	authGroup.POST("/registration/", authH.register)
	authGroup.GET("/registration/account-confirm-email/:key/", authH.confirmEmail)
	authGroup.POST("/registration/account-confirm-email/:key/", authH.confirmEmail)
	authGroup.POST("/login/", authH.login)
	authGroup.POST("/logout/", middleware.RequireAuth(deps.Auth), authH.logout)

	langH := &languageHandler{handler: h, languages: deps.Languages}
	v1.GET("/languages/", langH.list)
	v1.GET("/languages/learning-available/", langH.learningAvailable)

	typeH := &wordTypeHandler{handler: h, types: deps.WordTypes}
	v1.GET("/types/", typeH.list)

	private := v1.Group("", middleware.RequireAuth(deps.Auth))

	profileH := &profileHandler{handler: h, profiles: deps.Profiles}
	private.GET("/users/me/", profileH.get)
	private.PATCH("/users/me/", profileH.update)
	private.DELETE("/users/me/", profileH.delete)
	private.GET("/users/me/learning-languages/", profileH.learningLanguages)
	private.POST("/users/me/learning-languages/", profileH.addLearningLanguages)

	favH := &favoriteHandler{handler: h, favorites: deps.Favorites}
	vocabH := &vocabularyHandler{handler: h, vocabulary: deps.Vocabulary}
	private.GET("/vocabulary/", vocabH.list)
	private.GET("/vocabulary/favorites/", favH.words)
	private.POST("/vocabulary/", vocabH.create)
	private.GET("/vocabulary/:slug/", vocabH.get)
	private.PATCH("/vocabulary/:slug/", vocabH.update)
	private.DELETE("/vocabulary/:slug/", vocabH.delete)
	private.GET("/vocabulary/:slug/definitions/", vocabH.definitions)
	private.POST("/vocabulary/:slug/definitions/", vocabH.addDefinition)
	private.GET("/vocabulary/:slug/examples/", vocabH.examples)
	private.POST("/vocabulary/:slug/examples/", vocabH.addExample)
	private.GET("/vocabulary/:slug/translations/", vocabH.translations)
	private.POST("/vocabulary/:slug/translations/", vocabH.addTranslation)
	private.GET("/vocabulary/:slug/tags/", vocabH.tags)
	private.POST("/vocabulary/:slug/tags/", vocabH.addTags)
	private.POST("/vocabulary/:slug/favorite/", favH.toggle(deps.Favorites.AddWord, http.StatusCreated))
	private.DELETE("/vocabulary/:slug/favorite/", favH.toggle(deps.Favorites.RemoveWord, http.StatusNoContent))
	for path, kind := range linkRoutes {
		private.GET("/vocabulary/:slug/"+path+"/", vocabH.links(kind))
		private.POST("/vocabulary/:slug/"+path+"/", vocabH.addLink(kind))
		private.DELETE("/vocabulary/:slug/"+path+"/:other/", vocabH.removeLink(kind))
	}

	collH := &collectionHandler{handler: h, collections: deps.Collections}
	private.GET("/collections/", collH.list)
	private.POST("/collections/", collH.create)
	private.GET("/collections/favorites/", favH.collections)
	private.GET("/collections/:slug/", collH.get)
	private.PATCH("/collections/:slug/", collH.update)
	private.DELETE("/collections/:slug/", collH.delete)
	private.POST("/collections/:slug/words/", collH.addWords)
	private.POST("/collections/:slug/favorite/", favH.toggle(deps.Favorites.AddCollection, http.StatusCreated))
	private.DELETE("/collections/:slug/favorite/", favH.toggle(deps.Favorites.RemoveCollection, http.StatusNoContent))

	exH := &exerciseHandler{handler: h, exercises: deps.Exercises}
	private.GET("/exercises/", exH.list)
	private.GET("/exercises/favorites/", favH.exercises)
	private.POST("/exercises/:slug/favorite/", favH.toggle(deps.Favorites.AddExercise, http.StatusCreated))
	private.DELETE("/exercises/:slug/favorite/", favH.toggle(deps.Favorites.RemoveExercise, http.StatusNoContent))
	private.GET("/exercises/translator/settings/", exH.settings)
	private.PATCH("/exercises/translator/settings/", exH.updateSettings)
	private.GET("/exercises/:slug/history/", exH.history)
	private.POST("/exercises/:slug/history/", exH.recordHistory)

	adminH := &adminHandler{handler: h, admin: deps.Admin, exercises: deps.Exercises}
	private.POST("/admin/exercises/", adminH.saveExercise)
	private.GET("/admin/:resource/", adminH.list)
	private.DELETE("/admin/:resource/:id/", adminH.delete)

	return cors.New(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch,
			http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(engine)
}
