//go:build !js && !wasm

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/echofp/echofp/pkg/catalog"
	"github.com/echofp/echofp/pkg/echofp"
	"github.com/echofp/echofp/pkg/logger"
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	port := getEnvOrDefault("ECHOFP_PORT", "8080")
	snapshotPath := getEnvOrDefault("ECHOFP_SNAPSHOT_PATH", "echofp.snapshot")
	catalogPath := getEnvOrDefault("ECHOFP_CATALOG_PATH", "")
	originsEnv := getEnvOrDefault("ECHOFP_ALLOWED_ORIGINS", "*")

	log := logger.GetLogger()

	opts := []echofp.Option{echofp.WithSnapshotPath(snapshotPath)}
	if catalogPath != "" {
		cat, err := catalog.Open(catalogPath)
		if err != nil {
			log.Fatalf("opening catalog: %v", err)
		}
		opts = append(opts, echofp.WithCatalog(cat))
	}

	svc, err := echofp.NewService(opts...)
	if err != nil {
		log.Fatalf("initializing service: %v", err)
	}
	defer svc.Close()

	srv := &server{svc: svc, log: log}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(srv.loggingMiddleware())

	corsConfig := cors.DefaultConfig()
	if originsEnv == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(originsEnv, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	srv.registerRoutes(router)

	addr := fmt.Sprintf(":%s", port)
	log.Infof("echofp server starting on %s", addr)
	log.Infof("  snapshot: %s", snapshotPath)
	if catalogPath != "" {
		log.Infof("  catalog:  %s", catalogPath)
	}
	log.Infof("  origins:  %s", originsEnv)

	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
