package app

import (
	cmnenv "match_server/server/common/env"
)

type Config struct {
	Env  string
	Port string

	CohereAPIKey     string
	CohereEndpoint   string
	CohereEmbedModel string

	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	VectorBackend    string
	ChromaEndpoint   string
	ChromaCollection string
	QdrantEndpoint   string
	QdrantCollection string
}

func LoadConfig() Config {
	return Config{
		Env:  cmnenv.String("APP_ENV", "dev"),
		Port: cmnenv.String("PORT", "8080"),

		CohereAPIKey:     cmnenv.String("COHERE_API_KEY", ""),
		CohereEndpoint:   cmnenv.String("COHERE_ENDPOINT", "https://api.cohere.com"),
		CohereEmbedModel: cmnenv.String("COHERE_EMBED_MODEL", "embed-english-v3.0"),

		GroqAPIKey:  cmnenv.String("GROQ_API_KEY", ""),
		GroqBaseURL: cmnenv.String("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:   cmnenv.String("GROQ_MODEL", "llama3-8b-8192"),

		VectorBackend:    cmnenv.String("VECTOR_BACKEND", "chroma"),
		ChromaEndpoint:   cmnenv.String("CHROMA_ENDPOINT", "http://localhost:8000"),
		ChromaCollection: cmnenv.String("CHROMA_COLLECTION", "memory"),
		QdrantEndpoint:   cmnenv.String("QDRANT_ENDPOINT", "http://localhost:6333"),
		QdrantCollection: cmnenv.String("QDRANT_COLLECTION", "memory"),
	}
}
