package cmd

import (
	"context"

	"github.com/minewander/docrag/core/config"
	"github.com/minewander/docrag/core/file_store"
	"github.com/minewander/docrag/core/vector_store"
	"github.com/minewander/docrag/internal/dao"
	"github.com/minewander/docrag/internal/logic/index"
	"github.com/minewander/docrag/internal/logic/rag"
	"github.com/gogf/gf/v2/frame/g"
)

// init initializes all components of the application
func init() {
	ctx := context.Background()

	// Validate configuration before initializing components
	g.Log().Info(ctx, "Validating application configuration...")
	err := config.ValidateConfiguration(ctx)
	if err != nil {
		g.Log().Fatalf(ctx, "Configuration validation failed:\n%v", err)
	}

	// Initialize database
	err = dao.InitDB()
	if err != nil {
		g.Log().Fatalf(ctx, "Database connection initialization failed: %v", err)
	}

	// Initialize storage system
	file_store.InitStorage()

	// Initialize vector database
	_, err = vector_store.GetVectorStore()
	if err != nil {
		g.Log().Fatalf(ctx, "Vector store initialization failed: %v", err)
	}

	// Initialize document indexer
	index.InitDocumentIndexer()

	// Initialize retriever configuration
	rag.InitRetrieverConfig()

	g.Log().Info(ctx, "✓ All components initialized successfully")
}
