package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"popolo/internal/config"
	"popolo/internal/database"
	"popolo/internal/github"
	"popolo/internal/handler"
	"popolo/internal/middleware"
	"popolo/internal/repository"
	"popolo/internal/service"
)

// main is the single entry-point for the webhook server.
func main() {
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - LLM provider: %s", cfg.LLMProvider)
	log.Printf("  - Portfolio store: %s", cfg.StoreBackend)

	// Portfolio store (Mongo or local file).
	var (
		store       service.PortfolioStore
		mongoClient *mongo.Client
	)
	switch cfg.StoreBackend {
	case "mongo":
		client, ctx, cancel, err := database.NewMongo(cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer cancel()
		defer client.Disconnect(ctx)
		log.Printf("Connected to MongoDB")

		mongoClient = client
		store = repository.NewPortfolioRepository(client.Database(cfg.DBName))
	default:
		store = repository.NewFileStore(cfg.OutputDir)
	}

	// Summarization agent.
	var agent service.Agent
	switch cfg.LLMProvider {
	case "openai":
		agent = service.NewOpenAIAgent(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case "dummy":
		agent = service.NewDummyAgent()
	default:
		vertexAgent, err := service.NewVertexAgent(context.Background(), cfg.ProjectID, cfg.Location, cfg.VertexModel)
		if err != nil {
			log.Fatalf("Failed to initialize Vertex AI agent: %v", err)
		}
		defer vertexAgent.Close()
		agent = vertexAgent
	}

	// GitHub client and pipeline.
	gh := github.NewClient(cfg.GitHubToken)
	pipeline := service.NewPortfolioService(gh, agent, store, cfg.OutputName)

	// HTTP server.
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	app.Use(middleware.Logging())

	handler.RegisterRoutes(app, gh, pipeline, cfg.PipelineTimeout)
	handler.NewHealthHandler(mongoClient).Register(app)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
