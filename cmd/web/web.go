package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quillhub/quillhub-be/app"
	"github.com/quillhub/quillhub-be/cache"
	"github.com/quillhub/quillhub-be/config"
	appDb "github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/db/memory"
	"github.com/quillhub/quillhub-be/db/mysql"
	"github.com/quillhub/quillhub-be/routes"
	"github.com/quillhub/quillhub-be/services"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	database, err := getDatabase(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("error connecting to the database")
	}
	defer database.Close()

	if err := configureFirebaseCredentials(); err != nil {
		logrus.WithError(err).Fatal("error configuring firebase credentials")
	}
	firebaseApp, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		logrus.WithError(err).Fatal("error initializing firebase")
	}
	authClient, err := firebaseApp.Auth(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("error initializing auth client")
	}

	var bucket *services.StorageBucket
	if cfg.StorageBucket != "" {
		bucket, err = services.NewStorageBucket(context.Background(), firebaseApp, cfg.StorageBucket)
		if err != nil {
			logrus.WithError(err).Fatal("error connecting to the uploads bucket")
		}
	} else {
		logrus.Warn("no $STORAGE_BUCKET configured; attachments disabled")
	}

	pageCache := getPageCache(cfg)
	content := app.NewContentService(database, pageCache)
	feeds := app.NewFeedComposer(database, pageCache)
	follows := app.NewFollowManager(database)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Split(cfg.FrontendOrigins, ";"),
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	routes.AddHealthCheckRoutes(&r.RouterGroup)
	routes.AddPostRoutes(&r.RouterGroup, database, content, authClient, bucket)
	routes.AddGroupRoutes(&r.RouterGroup, database, content, authClient)
	routes.AddFeedRoutes(&r.RouterGroup, database, feeds, authClient)
	routes.AddFollowRoutes(&r.RouterGroup, database, follows, authClient)
	routes.AddUserRoutes(&r.RouterGroup, database, authClient)

	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("error running web server")
	}
}

func getDatabase(cfg *config.Config) (appDb.Database, error) {
	if cfg.DBHost == "" {
		logrus.Warn("no $DB_HOST configured; using the in-memory store")
		return memory.NewStore(), nil
	}
	return mysql.GetDatabase(cfg)
}

func getPageCache(cfg *config.Config) cache.Cache {
	if cfg.RedisHost != "" {
		return cache.NewRedis(cfg, config.FeedCacheTTL)
	}
	return cache.NewMemory(config.FeedCacheTTL)
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		logrus.Infof("credentials path detected in env; expecting credentials at %v", credentialsPath)
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		logrus.Info("credentials JSON string detected in env")
		err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 0400)
		if err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		err = os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile)
		if err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
