package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/nestorwheelock/buceo-feliz/config"
	"github.com/nestorwheelock/buceo-feliz/middleware"
	"github.com/nestorwheelock/buceo-feliz/portalui"
	"github.com/nestorwheelock/buceo-feliz/routes"
	"github.com/nestorwheelock/buceo-feliz/services"
	"github.com/nestorwheelock/buceo-feliz/socket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	cfg := config.Load()

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	ctx := context.Background()

	// Initialize Services
	authService := &services.AuthService{Dynamo: dynamoService}
	fcmService := services.NewFCMService(ctx, cfg.FirebaseCredentialsPath, dynamoService)
	emailService := &services.EmailService{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.NotifyFrom,
		NotifyTo: cfg.NotifyTo,
	}

	// Socket.IO server for real-time chat
	chatServer := socket.NewChatServer()
	go func() {
		if err := chatServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer chatServer.Close()

	conversationService := &services.ConversationService{
		Dynamo:      dynamoService,
		Broadcaster: &socket.Broadcaster{Server: chatServer},
		Mailer:      emailService,
		Notifier:    fcmService,
	}
	crmService := &services.CRMService{Dynamo: dynamoService}
	sweeps := &services.SweepService{Conversations: conversationService, FCM: fcmService}

	// Scheduled maintenance
	scheduler := cron.New()
	scheduler.AddFunc("*/15 * * * *", func() { sweeps.NeedsReplySweep(context.Background()) })
	scheduler.AddFunc("0 3 * * *", func() { sweeps.PurgeFailingDevices(context.Background()) })
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Buceo Feliz")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	r.Handle("/socket.io/", chatServer)

	// Register routes
	routes.RegisterMobileRoutes(r, authService, fcmService, conversationService)
	routes.RegisterCRMRoutes(r, authService, crmService)
	routes.RegisterPricingRoutes(r, authService)
	routes.RegisterMediaRoutes(r, authService)
	routes.RegisterPortalRoutes(r, authService, portalui.DefaultConfig())
	routes.RegisterStaffRoutes(r, cfg.StaticDir)

	// Offline cache layer for the staff chat page
	offline := middleware.NewOfflineCache(nil)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(offline.Middleware(r))

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
