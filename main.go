package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/andrelmbraga/barraquinha/config"
	"github.com/andrelmbraga/barraquinha/middlewares"
	"github.com/andrelmbraga/barraquinha/models"
	"github.com/andrelmbraga/barraquinha/router"
	"github.com/andrelmbraga/barraquinha/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: arquivo .env não encontrado: %v", err)
	}

	utils.InitLogger()

	if os.Getenv("ADMIN_PASSWORD") == "" && os.Getenv("ADMIN_PASSWORD_HASH") == "" {
		log.Printf("Aviso: ADMIN_PASSWORD não configurada, painel admin ficará inacessível")
	}
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Falha ao conectar no banco: %v", err)
	}

	// Guarda a conexão para quem precisar fora dos controllers
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Rate limit global: 50 req/s por IP
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Escutando na porta %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderEvent{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Falha no AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate concluído.")
}
