package config

import (
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"chat-app-server/models"
)

var DB *gorm.DB
var Redis *redis.Client

func env(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func InitDatabase() {
	host := env("DB_HOST", "localhost")
	user := env("DB_USER", "postgres")
	password := env("DB_PASSWORD", "postgres")
	dbname := env("DB_NAME", "chat")
	port := env("DB_PORT", "5432")
	sslmode := env("DB_SSLMODE", "disable")

	log.Printf("[config] connecting to database: host=%s user=%s dbname=%s port=%s sslmode=%s",
		host, user, dbname, port, sslmode)

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	log.Println("[config] connected to database")

	DB.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.File{},
		&models.ChatRoom{},
		&models.Message{},
	)
}

func InitRedis() {
	addr := env("REDIS_ADDR", "localhost:6379")

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	log.Printf("[config] redis client configured for %s", addr)
}
