// Package api serves a read-only JSON view over runs persisted by the CLI,
// so several runs can be compared without re-reading the SQLite file by
// hand.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mdub555/schedsim/internal/store"
)

// Server wraps a gin router over a store.Repository.
type Server struct {
	router *gin.Engine
	repo   *store.Repository
	port   string
}

// NewServer builds a server ready to serve on port once Start is called.
func NewServer(repo *store.Repository, port string) *Server {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	config.AllowMethods = []string{"GET", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type"}
	router.Use(cors.New(config))

	server := &Server{router: router, repo: repo, port: port}
	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")

	v1.GET("/runs", s.listRuns)
	v1.GET("/runs/:id", s.getRun)
	v1.GET("/runs/:id/threads", s.getRunThreads)
	v1.GET("/health", s.healthCheck)
}

// Start runs the HTTP server, blocking until it stops.
func (s *Server) Start() error {
	return s.router.Run(":" + s.port)
}

// Router exposes the underlying gin.Engine, mainly for tests that want to
// exercise routes without binding a real port.
func (s *Server) Router() *gin.Engine { return s.router }

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now()})
}

func (s *Server) listRuns(c *gin.Context) {
	runs, err := s.repo.ListRuns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) getRun(c *gin.Context) {
	run, err := s.repo.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) getRunThreads(c *gin.Context) {
	threads, err := s.repo.GetRunThreads(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, threads)
}
