package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	apirest "github.com/qingyunzi/xiuxian/server/api/rest"
	"github.com/qingyunzi/xiuxian/server/config"
	dbadapter "github.com/qingyunzi/xiuxian/server/db"
	"github.com/qingyunzi/xiuxian/server/game/grotto"
	"github.com/qingyunzi/xiuxian/server/game/item"
	"github.com/qingyunzi/xiuxian/server/game/player"
	"github.com/qingyunzi/xiuxian/server/gamelog"
	mw "github.com/qingyunzi/xiuxian/server/middleware"
	"github.com/qingyunzi/xiuxian/server/model"
	"github.com/qingyunzi/xiuxian/server/resource"
	"github.com/qingyunzi/xiuxian/server/save"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	// ---- Database ----
	db, err := dbadapter.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	logger.Info("DB initialized")

	// ---- Balance tables ----
	tables, err := resource.Load(cfg.Data.TablesDir)
	if err != nil {
		log.Fatalf("tables: %v", err)
	}
	logger.Info("balance tables loaded",
		zap.Int("herbs", len(tables.Herbs)),
		zap.Int("grotto_levels", len(tables.GrottoLevels)),
	)

	// ---- Game state ----
	recorder := gamelog.NewRecorder(cfg.Game.LogCapacity, logger)
	saveSvc := save.NewService(db, logger)

	initial := player.New(cfg.Game.PlayerName)
	if snap, err := saveSvc.Load(context.Background(), cfg.Game.DefaultSlot); err == nil {
		initial = snap.Player
		recorder.Replace(snap.Logs)
		logger.Info("resumed save", zap.String("slot", cfg.Game.DefaultSlot))
	} else if !errors.Is(err, save.ErrSlotNotFound) {
		log.Fatalf("load save: %v", err)
	}
	store := player.NewStore(initial, logger)

	// ---- Services ----
	classifier := item.NewClassifier(nil)
	itemSvc := item.NewService(classifier, tables.KnownEffects, tables.Rarities, logger)
	useHandler := player.NewHandler(tables, nil, logger)
	grottoSvc := grotto.NewService(tables, nil, time.Now, logger)

	// ---- Gin HTTP Server ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mw.RequestID(), mw.RequestLogger(logger, "/health"), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(cfg.Security.RateLimitRPS), cfg.Security.RateLimitBurst))

	// Health check
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	// ---- REST API routes ----
	playerH := apirest.NewPlayerHandler(store, recorder)
	invH := apirest.NewInventoryHandler(store, itemSvc, useHandler, tables.Rarities, recorder)
	grottoH := apirest.NewGrottoHandler(store, grottoSvc, recorder)
	saveH := apirest.NewSaveHandler(store, saveSvc, recorder)

	api := r.Group("/api")
	{
		api.GET("/player", playerH.Get)
		api.GET("/player/logs", playerH.Logs)
		api.POST("/player/equip", playerH.Equip)
		api.POST("/player/unequip", playerH.Unequip)
		api.POST("/player/natal", playerH.SetNatal)

		api.GET("/inventory", invH.List)
		api.POST("/inventory/grant", invH.Grant)
		api.POST("/inventory/use", invH.Use)
		api.POST("/inventory/use-batch", invH.BatchUse)
		api.POST("/inventory/discard", invH.Discard)
		api.POST("/inventory/sell", invH.Sell)

		api.GET("/grotto", grottoH.Get)
		api.POST("/grotto/upgrade", grottoH.Upgrade)
		api.POST("/grotto/plant", grottoH.Plant)
		api.POST("/grotto/harvest", grottoH.Harvest)
		api.POST("/grotto/harvest-all", grottoH.HarvestAll)
		api.POST("/grotto/enhance", grottoH.Enhance)

		api.GET("/saves", saveH.List)
		api.POST("/saves/:slot", saveH.Save)
		api.POST("/saves/:slot/load", saveH.Load)
		api.DELETE("/saves/:slot", saveH.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
