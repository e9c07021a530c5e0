package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/agenthands/lattice/internal/config"
	"github.com/agenthands/lattice/internal/core/bridge"
	"github.com/agenthands/lattice/internal/core/chat"
	"github.com/agenthands/lattice/internal/core/extraction"
	"github.com/agenthands/lattice/internal/core/search"
	"github.com/agenthands/lattice/internal/core/session"
	"github.com/agenthands/lattice/internal/core/unify"
	"github.com/agenthands/lattice/internal/llm"
	"github.com/agenthands/lattice/internal/store"
)

type Server struct {
	Session  *session.Session
	Chat     *chat.Chat
	Searcher *search.Searcher
	Store    store.GraphStore // nil when persistence is not configured
	Logger   *log.Logger
}

// New wires a server from already-built collaborators. Tests use this
// directly; production goes through Bootstrap.
func New(sess *session.Session, chatClient *chat.Chat, searcher *search.Searcher, st store.GraphStore, logger *log.Logger) *Server {
	return &Server{
		Session:  sess,
		Chat:     chatClient,
		Searcher: searcher,
		Store:    st,
		Logger:   logger,
	}
}

// Bootstrap builds the full dependency graph from configuration: LLM clients
// via the provider factory, the three capabilities, the session, and the
// optional Memgraph store.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Server, error) {
	llmClient, embedder, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	extractor := extraction.NewExtractor(llmClient, cfg.Prompts.Extraction)
	bridger := bridge.NewBridger(llmClient, cfg.Prompts.Bridge)
	unifier := unify.NewUnifier(bridger, logger)
	unifier.OnProgress = func(p unify.Phase) {
		logger.Info("unification progress", "phase", string(p))
	}
	sess := session.New(extractor, unifier, logger)

	var st store.GraphStore
	if cfg.Memgraph.URI != "" {
		mg, err := store.NewMemgraphStore(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			return nil, err
		}
		st = mg
	} else {
		logger.Info("persistence disabled (no memgraph uri configured)")
	}

	chatClient := chat.NewChat(llmClient, cfg.Prompts.Chat, logger)
	searcher := search.NewSearcher(embedder)

	return New(sess, chatClient, searcher, st, logger), nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/documents", s.IngestDocument)
	r.POST("/chat", s.PostChat)

	g := r.Group("/graph")
	{
		g.GET("", s.GetGraph)
		g.POST("/import", s.ImportGraph)
		g.GET("/export", s.ExportGraph)
		g.GET("/validate", s.ValidateGraph)
		g.GET("/components", s.GetComponents)
		g.POST("/unify", s.UnifyGraph)
		g.GET("/search", s.SearchGraph)
		g.POST("/reset", s.ResetGraph)
	}

	snaps := r.Group("/snapshots")
	{
		snaps.GET("", s.ListSnapshots)
		snaps.POST("", s.SaveSnapshot)
		snaps.POST("/:name/restore", s.RestoreSnapshot)
		snaps.DELETE("/:name", s.DeleteSnapshot)
	}

	return r
}

type IngestRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) IngestDocument(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request must carry a non-empty text field"})
		return
	}

	g, err := s.Session.Ingest(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, session.ErrStaleGeneration) {
			c.JSON(http.StatusConflict, gin.H{"error": "graph was reset during extraction"})
			return
		}
		s.Logger.Error("extraction failed", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to extract a graph from the document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"graph": g, "nodes": len(g.Nodes), "links": len(g.Links)})
}

func (s *Server) GetGraph(c *gin.Context) {
	g, err := s.Session.Current()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no graph loaded"})
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) ImportGraph(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	g, err := s.Session.Import(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"graph": g, "nodes": len(g.Nodes), "links": len(g.Links)})
}

func (s *Server) ExportGraph(c *gin.Context) {
	data, err := s.Session.Export()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no graph loaded"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="graph.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) ValidateGraph(c *gin.Context) {
	report, err := s.Session.Validate()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no graph loaded"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) GetComponents(c *gin.Context) {
	components, err := s.Session.Components()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no graph loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"components": components, "count": len(components)})
}

func (s *Server) UnifyGraph(c *gin.Context) {
	result, err := s.Session.Unify(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoGraph):
			c.JSON(http.StatusNotFound, gin.H{"error": "no graph loaded"})
		case errors.Is(err, session.ErrRefineBusy):
			c.JSON(http.StatusConflict, gin.H{"error": "a refinement is already in progress"})
		case errors.Is(err, session.ErrStaleGeneration):
			c.JSON(http.StatusConflict, gin.H{"error": "graph was reset during refinement"})
		default:
			s.Logger.Error("unification failed", "err", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "bridging capability failed; graph left unchanged"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) SearchGraph(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	g, err := s.Session.Current()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no graph loaded"})
		return
	}

	c.JSON(http.StatusOK, s.Searcher.Search(c.Request.Context(), g, query))
}

func (s *Server) ResetGraph(c *gin.Context) {
	s.Session.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *Server) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request must carry a non-empty message field"})
		return
	}

	g, err := s.Session.Current()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no graph loaded"})
		return
	}

	reply := s.Chat.Reply(c.Request.Context(), req.Message, g)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

type SaveSnapshotRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) requireStore(c *gin.Context) bool {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not configured"})
		return false
	}
	return true
}

func (s *Server) SaveSnapshot(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	var req SaveSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request must carry a non-empty name field"})
		return
	}

	g, err := s.Session.Current()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no graph loaded"})
		return
	}

	info, err := s.Store.SaveSnapshot(c.Request.Context(), req.Name, g)
	if err != nil {
		s.Logger.Error("failed to save snapshot", "name", req.Name, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save snapshot"})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) ListSnapshots(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	infos, err := s.Store.ListSnapshots(c.Request.Context())
	if err != nil {
		s.Logger.Error("failed to list snapshots", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list snapshots"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": infos})
}

func (s *Server) RestoreSnapshot(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	name := c.Param("name")
	g, err := s.Store.LoadSnapshot(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "snapshot not found"})
			return
		}
		s.Logger.Error("failed to load snapshot", "name", name, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load snapshot"})
		return
	}

	restored := s.Session.Restore(g)
	c.JSON(http.StatusOK, gin.H{"graph": restored, "nodes": len(restored.Nodes), "links": len(restored.Links)})
}

func (s *Server) DeleteSnapshot(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	name := c.Param("name")
	if err := s.Store.DeleteSnapshot(c.Request.Context(), name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "snapshot not found"})
			return
		}
		s.Logger.Error("failed to delete snapshot", "name", name, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete snapshot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
