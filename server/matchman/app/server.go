package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"match_server/server/matchman/api"
	"match_server/server/matchman/service"
)

// vectorStore is what the app needs from a store backend: the message store
// contract plus collection bootstrap at startup.
type vectorStore interface {
	service.MessageStore
	EnsureCollection(ctx context.Context) error
}

type Server struct {
	HTTPServer *http.Server
}

// NewServer wires the embedder, vector store, and LLM client once and shares
// them across all requests for the life of the process.
func NewServer(cfg Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	embedder := service.NewCohereService(cfg.CohereEndpoint, cfg.CohereAPIKey, cfg.CohereEmbedModel)

	var store vectorStore
	switch cfg.VectorBackend {
	case "chroma":
		store = service.NewChromaService(cfg.ChromaEndpoint, cfg.ChromaCollection, embedder)
	case "qdrant":
		store = service.NewQdrantService(cfg.QdrantEndpoint, cfg.QdrantCollection, embedder)
	default:
		return nil, fmt.Errorf("unknown vector backend %q", cfg.VectorBackend)
	}
	if err := store.EnsureCollection(ctx); err != nil {
		return nil, fmt.Errorf("ensure collection: %w", err)
	}

	llm := service.NewGroqService(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
	chatSvc := service.NewChatService(store, llm)
	matcherSvc := service.NewSimilarityService(store)

	h := api.NewHandler(chatSvc, matcherSvc)
	r := gin.Default()
	h.RegisterRoutes(r)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{HTTPServer: httpServer}, nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTPServer.Shutdown(ctx)
}
