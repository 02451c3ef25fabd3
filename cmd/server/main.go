package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/fintrack-app/backend/internal/api"
	"github.com/fintrack-app/backend/internal/auth"
	"github.com/fintrack-app/backend/internal/config"
	"github.com/fintrack-app/backend/internal/service"
	"github.com/fintrack-app/backend/internal/store"
)

func main() {
	// .env is optional; real deployments configure via the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	var storeImpl store.Store
	var firebaseAuth *auth.FirebaseAuth

	if cfg.UseMemoryStore {
		log.Println("Using in-memory store for local development")
		storeImpl = store.NewMemoryStore()
	} else {
		firestoreClient, err := firestore.NewClient(ctx, cfg.GoogleCloudProject)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()
		storeImpl = store.NewFirestoreStore(firestoreClient)
	}

	// Memory-store deployments always run with mock auth; Firestore
	// deployments verify Firebase tokens unless SKIP_AUTH is set.
	var authMiddleware gin.HandlerFunc
	if cfg.UseMemoryStore || cfg.SkipAuth {
		log.Println("Using mock authentication for local development")
		authMiddleware = auth.LocalDevMiddleware()
	} else {
		var err error
		firebaseAuth, err = auth.NewFirebaseAuth(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}
		authMiddleware = auth.Middleware(firebaseAuth)
	}

	server := api.NewServer(
		service.NewFinanceService(storeImpl),
		service.NewGoalService(storeImpl),
		service.NewDashboardService(storeImpl),
	)
	router := server.Router(authMiddleware, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(router, &http2.Server{}),
	}

	log.Printf("Starting server on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
