package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"aura/internal/config"
	"aura/internal/logger"
	"aura/internal/model"
	"aura/internal/repository"
	"aura/internal/storage"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@aura.local"
	demoPassword = "demo-password"
)

// Seed creates the data layout and a demo account so the frontend can be
// exercised locally without registering first.
func main() {
	logger.Init()
	defer logger.Log.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Sugar.Fatalf("create data dir: %v", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Sugar.Fatalf("create upload dir: %v", err)
	}

	userStore := storage.NewCollection[model.User](filepath.Join(cfg.DataDir, "users.json"))
	docStore := storage.NewCollection[model.Document](filepath.Join(cfg.DataDir, "pdfs.json"))
	userRepo := repository.NewUserRepository(userStore)

	// Materialize pdfs.json so a fresh checkout starts with both collections.
	if err := docStore.Update(func(docs []model.Document) ([]model.Document, error) {
		return docs, nil
	}); err != nil {
		logger.Sugar.Fatalf("init documents collection: %v", err)
	}

	ctx := context.Background()
	if _, err := userRepo.FindByEmail(ctx, demoEmail); err == nil {
		logger.Sugar.Infow("demo user already present", "email", demoEmail)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		logger.Sugar.Fatalf("read users collection: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Sugar.Fatalf("hash demo password: %v", err)
	}

	now := time.Now().UTC()
	if err := userRepo.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Username:     demoUsername,
		Email:        demoEmail,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		LastLogin:    now,
	}); err != nil {
		logger.Sugar.Fatalf("create demo user: %v", err)
	}

	logger.Sugar.Infow("seeded demo user", "email", demoEmail, "password", demoPassword)
}
