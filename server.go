package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/allape/openspin/config"
	"github.com/allape/openspin/spin/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type ViewerInfo struct {
	session.Summary
	Socket string `json:"socket"`
}

type Server struct {
	Config   config.Config
	Sessions []*session.Server

	upgrader websocket.Upgrader
}

func NewServer(conf config.Config, sessions []*session.Server) *Server {
	server := &Server{
		Config:   conf,
		Sessions: sessions,
	}
	if conf.Websocket.Cors {
		server.upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
	return server
}

func (s *Server) session(id string) *session.Server {
	for _, ss := range s.Sessions {
		if ss.Viewer.ID == id {
			return ss
		}
	}
	return nil
}

func (s *Server) socketPath(id string) string {
	return strings.TrimSuffix(s.Config.Websocket.Path, "/") + "/" + id
}

func (s *Server) info(ss *session.Server) ViewerInfo {
	return ViewerInfo{
		Summary: ss.Summary(),
		Socket:  s.socketPath(ss.Viewer.ID),
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if s.Config.Websocket.Cors {
		router.Use(cors.Default())
	}

	api := router.Group("/api/viewers")
	api.GET("", s.listViewers)
	api.GET("/:id", s.getViewer)
	api.GET("/:id/frame", s.getFrame)
	api.POST("/:id/view", s.setView)
	api.POST("/:id/fullscreen", s.requestFullscreen)

	router.GET(strings.TrimSuffix(s.Config.Websocket.Path, "/")+"/:id", s.handleSocket)

	SetupUI(router, s.Config)

	return router
}

func (s *Server) listViewers(context *gin.Context) {
	infos := make([]ViewerInfo, 0, len(s.Sessions))
	for _, ss := range s.Sessions {
		infos = append(infos, s.info(ss))
	}
	context.JSON(http.StatusOK, infos)
}

func (s *Server) getViewer(context *gin.Context) {
	ss := s.session(context.Param("id"))
	if ss == nil {
		context.JSON(http.StatusNotFound, gin.H{"error": "viewer not found"})
		return
	}
	context.JSON(http.StatusOK, s.info(ss))
}

func (s *Server) getFrame(context *gin.Context) {
	ss := s.session(context.Param("id"))
	if ss == nil {
		context.JSON(http.StatusNotFound, gin.H{"error": "viewer not found"})
		return
	}

	frame := ss.LastFrame()
	if frame == nil {
		context.Status(http.StatusNoContent)
		return
	}

	context.Data(http.StatusOK, ss.Codec.ContentType(), frame)
}

func (s *Server) setView(context *gin.Context) {
	ss := s.session(context.Param("id"))
	if ss == nil {
		context.JSON(http.StatusNotFound, gin.H{"error": "viewer not found"})
		return
	}

	u, err := strconv.Atoi(context.Query("u"))
	if err != nil {
		context.JSON(http.StatusBadRequest, gin.H{"error": "invalid u"})
		return
	}
	v, err := strconv.Atoi(context.DefaultQuery("v", "0"))
	if err != nil {
		context.JSON(http.StatusBadRequest, gin.H{"error": "invalid v"})
		return
	}

	ss.Viewer.SetView(u, v)

	context.JSON(http.StatusOK, s.info(ss))
}

func (s *Server) requestFullscreen(context *gin.Context) {
	ss := s.session(context.Param("id"))
	if ss == nil {
		context.JSON(http.StatusNotFound, gin.H{"error": "viewer not found"})
		return
	}

	err := ss.Viewer.RequestFullscreen()
	if err != nil {
		context.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	context.Status(http.StatusNoContent)
}

func (s *Server) handleSocket(context *gin.Context) {
	ss := s.session(context.Param("id"))
	if ss == nil {
		context.JSON(http.StatusNotFound, gin.H{"error": "viewer not found"})
		return
	}

	conn, err := s.upgrader.Upgrade(context.Writer, context.Request, nil)
	if err != nil {
		l.Warn().Println("upgrade:", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	l.Verbose().Println("client connected to", ss.Viewer.ID, "from", conn.RemoteAddr())

	err = ss.HandleClient(Websocket2SpinClient(conn))
	if err != nil {
		l.Warn().Println("handle client:", err)
	}
}
