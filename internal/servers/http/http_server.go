package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"socketBoard/internal/handlers"
)

var (
	httpServer *HttpServer
	once       sync.Once
)

type HttpServer struct {
	ctx                     context.Context
	addr                    string
	router                  *gin.Engine
	restHandler             *handlers.RestHandler
	socketWhiteboardHandler *handlers.SocketWhiteboardHandler
}

func NewHttpServer(
	ctx context.Context,
	addr string,
	restHandler *handlers.RestHandler,
	socketWhiteboardHandler *handlers.SocketWhiteboardHandler,
) *HttpServer {
	once.Do(func() {
		httpServer = &HttpServer{
			ctx:                     ctx,
			addr:                    addr,
			restHandler:             restHandler,
			socketWhiteboardHandler: socketWhiteboardHandler,
		}
	})
	return httpServer
}

func (hs *HttpServer) Run() {
	hs.router = NewRouter(hs.restHandler, hs.socketWhiteboardHandler)

	server := hs.startServer()

	// Wait for interrupt signal to gracefully shut down the server
	hs.socketWhiteboardHandler.WaitForShutdown(server)
}

// NewRouter wires every board route onto a fresh gin engine.
func NewRouter(restHandler *handlers.RestHandler, socketWhiteboardHandler *handlers.SocketWhiteboardHandler) *gin.Engine {
	router := gin.Default()

	router.GET("/health", restHandler.Health)

	boards := router.Group("/whiteboards")
	boards.POST("", restHandler.CreateWhiteboard)
	boards.GET("", restHandler.ListWhiteboards)

	board := boards.Group("/:id", handlers.WhiteboardIdMiddleware())
	board.GET("", restHandler.GetWhiteboard)
	board.PUT("/items", restHandler.SaveWhiteboardItems)
	board.POST("/favorite", restHandler.ToggleFavorite)
	board.POST("/images", restHandler.UploadWhiteboardImage)
	board.GET("/presence", restHandler.GetPresence)
	board.GET("/collaborators", restHandler.GetCollaborators)
	board.POST("/collaborators", restHandler.AddCollaborator)
	board.DELETE("/collaborators/:user_id", restHandler.RemoveCollaborator)
	board.GET("/export.png", restHandler.ExportWhiteboardPNG)

	router.GET("/ws/whiteboards/:id", handlers.WhiteboardIdMiddleware(), socketWhiteboardHandler.HandleSocketWhiteboardRoute)
	return router
}

func (hs *HttpServer) startServer() *http.Server {
	server := &http.Server{
		Addr:    hs.addr,
		Handler: hs.router,
	}

	go func() {
		log.Printf("HTTP server started on %s", hs.addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	return server
}
