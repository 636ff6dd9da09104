package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"game-asset-system/db"
	"game-asset-system/handlers"
	"game-asset-system/middleware"
	"game-asset-system/repository"
	"game-asset-system/services"
	"game-asset-system/utils"
	"game-asset-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	// Gateway token check first — it exempts /health itself.
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOriginsString,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
	}))

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI environment variable not set")
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		log.Println("⚠️  MONGO_DB not set, using default: gamedb")
		mongoDB = "gamedb"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Connect(ctx, mongoURI, mongoDB)
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to ensure indexes:", err)
	}

	players := repository.NewPlayerRepository(store)
	assets := repository.NewAssetRepository(store)
	playerAssets := repository.NewPlayerAssetRepository(store)

	gameService := services.NewGameService(players, assets, playerAssets)
	reportService := services.NewReportService(players, assets, playerAssets)

	handlers.SetupGameRoutes(app, gameService, reportService)

	if utils.R2Configured() {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}

		exportInterval := 10 * time.Minute
		if raw := os.Getenv("REPORT_EXPORT_INTERVAL"); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				log.Fatal("invalid REPORT_EXPORT_INTERVAL:", err)
			}
			exportInterval = d
		}

		exportWorker := workers.NewReportExportWorker(reportService, exportInterval)
		if err := exportWorker.Start(ctx); err != nil {
			log.Fatal("failed to start report export worker:", err)
		}
	} else {
		log.Println("⚠️  R2 not configured — report snapshot export disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5200"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	if err := store.Disconnect(shutdownCtx); err != nil {
		log.Printf("Error disconnecting from database: %v", err)
	}
}
