package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/classroom-dashboard-api/api/swagger"
	"github.com/noah-isme/classroom-dashboard-api/internal/handler"
	"github.com/noah-isme/classroom-dashboard-api/internal/middleware"
	"github.com/noah-isme/classroom-dashboard-api/internal/service"
	"github.com/noah-isme/classroom-dashboard-api/pkg/config"
	"github.com/noah-isme/classroom-dashboard-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/classroom-dashboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/classroom-dashboard-api/pkg/middleware/requestid"
)

type routerDeps struct {
	cfg       *config.Config
	logger    *zap.Logger
	metrics   *service.MetricsService
	sessions  *service.SessionService
	classroom *handler.ClassroomHandler
	session   *handler.SessionHandler
	health    *handler.MetricsHandler
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.logger, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(d.cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(d.metrics, "/metrics", "/health", "/ready"))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", d.health.Health)
	r.GET("/ready", d.health.Ready)
	r.GET("/metrics", d.health.Prometheus)
	r.GET("/metrics/summary", d.health.Summary)

	auth := r.Group("/auth")
	auth.GET("/session", d.session.Session)
	auth.POST("/logout", d.session.Logout)

	if d.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(d.cfg.APIPrefix)
	api.Use(middleware.RequireSession(d.sessions))
	api.GET("/courses", d.classroom.Courses)
	api.GET("/teachers", d.classroom.Teachers)
	api.GET("/students", d.classroom.Students)
	api.GET("/students/progress", d.classroom.StudentProgress)
	api.GET("/summary", d.classroom.Summary)
	api.GET("/cohorts/stats", d.classroom.CohortStats)
	api.GET("/courses/:courseId/students", d.classroom.CourseStudents)
	api.GET("/courses/:courseId/teachers", d.classroom.CourseTeachers)
	api.GET("/courses/:courseId/courseWork", d.classroom.CourseWork)
	api.GET("/courses/:courseId/courseWork/stats", d.classroom.CourseWorkStats)
	api.GET("/courses/:courseId/courseWork/:courseWorkId/submissions", d.classroom.Submissions)
	api.POST("/cache/refresh", d.session.RefreshCache)

	return r
}
