// Package server exposes the task manager over HTTP: a cookie-session
// surface for the browser frontend and a bearer-token REST surface under
// /api/v1. Both go through the same services and the same ownership
// scoping.
package server

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"planit/internal/auth"
	"planit/internal/service"
)

type Server struct {
	log        *slog.Logger
	auth       *service.AuthService
	tasks      *service.TaskService
	categories *service.CategoryService
	tokens     *auth.TokenIssuer
	engine     *gin.Engine
}

func New(log *slog.Logger, authSvc *service.AuthService, taskSvc *service.TaskService,
	categorySvc *service.CategoryService, tokens *auth.TokenIssuer) *Server {
	s := &Server{
		log:        log,
		auth:       authSvc,
		tasks:      taskSvc,
		categories: categorySvc,
		tokens:     tokens,
	}
	registerDateValidator()
	s.engine = s.buildRouter()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.POST("/signup", s.handleSignup)
	r.POST("/login", s.handleLogin)
	r.POST("/logout", s.handleLogout)

	web := r.Group("/", s.requireSession())
	web.GET("/tasks", s.handleTaskList)
	web.GET("/tasks/:id", s.handleTaskDetail)
	web.POST("/tasks", s.handleTaskCreate)
	web.POST("/tasks/:id/edit", s.handleTaskUpdate)
	web.POST("/tasks/:id/delete", s.handleTaskDelete)
	web.POST("/tasks/:id/toggle", s.handleTaskToggle)
	web.GET("/categories", s.handleCategoryList)
	web.POST("/categories", s.handleCategoryCreate)
	web.POST("/categories/:id/edit", s.handleCategoryUpdate)
	web.POST("/categories/:id/delete", s.handleCategoryDelete)

	api := r.Group("/api/v1", s.requireBearer())
	api.GET("/tasks", s.apiTaskList)
	api.POST("/tasks", s.apiTaskCreate)
	api.GET("/tasks/completed", s.apiTaskCompleted)
	api.GET("/tasks/pending", s.apiTaskPending)
	api.GET("/tasks/:id", s.apiTaskGet)
	api.PUT("/tasks/:id", s.apiTaskUpdate)
	api.PATCH("/tasks/:id", s.apiTaskPatch)
	api.DELETE("/tasks/:id", s.apiTaskDelete)
	api.POST("/tasks/:id/toggle", s.apiTaskToggle)
	api.GET("/categories", s.apiCategoryList)
	api.POST("/categories", s.apiCategoryCreate)
	api.GET("/categories/:id", s.apiCategoryGet)
	api.PUT("/categories/:id", s.apiCategoryUpdate)
	api.DELETE("/categories/:id", s.apiCategoryDelete)

	return r
}

// registerDateValidator teaches gin's binding engine the YYYY-MM-DD
// format used for due dates and makes field errors report json names.
func registerDateValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(service.DateLayout, fl.Field().String())
		return err == nil
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
