package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/vbmartins/cargalog-backend/pkg/config"
	"github.com/vbmartins/cargalog-backend/pkg/db"
	"github.com/vbmartins/cargalog-backend/pkg/db/models"
	"github.com/vbmartins/cargalog-backend/pkg/enums"
	"github.com/vbmartins/cargalog-backend/pkg/logger"
	"github.com/vbmartins/cargalog-backend/pkg/security"
)

// Seeds the first admin account. Refuses to overwrite an existing username.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	name := flag.String("name", "Administrator", "admin display name")
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if strings.TrimSpace(*password) == "" {
		fmt.Fprintln(os.Stderr, "missing -password")
		os.Exit(1)
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	conn := dbClient.DB()

	var existing models.User
	err = conn.WithContext(ctx).First(&existing, "username = ?", strings.ToLower(*username)).Error
	if err == nil {
		fmt.Fprintln(os.Stderr, "username already exists, refusing to overwrite")
		os.Exit(1)
	}
	if err != gorm.ErrRecordNotFound {
		requireResource(ctx, logg, "user lookup", err)
	}

	hash, err := security.HashPassword(*password, cfg.Password)
	requireResource(ctx, logg, "password hash", err)

	admin := models.User{
		Name:         strings.TrimSpace(*name),
		Username:     strings.ToLower(strings.TrimSpace(*username)),
		PasswordHash: hash,
		Role:         enums.UserRoleAdmin,
		Active:       true,
	}
	err = conn.WithContext(ctx).Create(&admin).Error
	requireResource(ctx, logg, "admin insert", err)

	ctx = logg.WithUserID(ctx, admin.ID.String())
	logg.Info(ctx, "admin account created")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "failed to bootstrap "+resource, err)
	os.Exit(1)
}
