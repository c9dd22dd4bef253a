package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"trakr-data/internal/config"
	"trakr-data/internal/database"
	httpapi "trakr-data/internal/http"
	"trakr-data/internal/ingest"
	"trakr-data/internal/logger"
	"trakr-data/internal/repository"
	"trakr-data/internal/service"
	"trakr-data/internal/store"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "trakr-data")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)

	orgsRepo := repository.NewPostgresOrganizationsRepository(db)
	accountsRepo := repository.NewPostgresAccountsRepository(db)
	objectsRepo := repository.NewPostgresTrackingObjectsRepository(db)
	tagsRepo := repository.NewPostgresTagsRepository(db)
	alarmsRepo := repository.NewPostgresAlarmsRepository(db)
	routesRepo := repository.NewPostgresRoutesRepository(db)
	rolesRepo := repository.NewPostgresRolesRepository(db)

	orgService := service.NewOrganizationService(orgsRepo, kv, zlog)
	accountService := service.NewAccountService(accountsRepo, zlog)
	objectService := service.NewTrackingObjectService(objectsRepo, zlog)
	tagService := service.NewTagService(tagsRepo, zlog)
	alarmService := service.NewAlarmService(alarmsRepo, zlog)
	routeService := service.NewRouteService(routesRepo, zlog)
	roleService := service.NewRoleService(rolesRepo, zlog)

	router := httpapi.NewRouter(zlog)
	router.RegisterRoutes(&httpapi.Handlers{
		Organizations:   httpapi.NewOrganizationsHandler(orgService, zlog),
		Accounts:        httpapi.NewAccountsHandler(accountService, orgService, zlog),
		TrackingObjects: httpapi.NewTrackingObjectsHandler(objectService, orgService, zlog),
		Tags:            httpapi.NewTagsHandler(tagService, orgService, zlog),
		Alarms:          httpapi.NewAlarmsHandler(alarmService, orgService, zlog),
		Routes:          httpapi.NewRoutesHandler(routeService, orgService, zlog),
		Roles:           httpapi.NewRolesHandler(roleService, orgService, zlog),
	})

	// 可选的遥测接入
	var mqttClient *ingest.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = ingest.NewClient(&cfg.MQTT, zlog)
		if err != nil {
			zlog.Fatal("failed to connect to MQTT broker", zap.Error(err))
		}
		consumer := ingest.NewTelemetryConsumer(tagsRepo, routesRepo, zlog)
		if err := mqttClient.Subscribe(cfg.MQTT.Topic, cfg.MQTT.QoS, consumer.HandleMessage); err != nil {
			zlog.Fatal("failed to subscribe to telemetry topic", zap.Error(err))
		}
		zlog.Info("telemetry ingest started", zap.String("topic", cfg.MQTT.Topic))
	}

	srv := service.NewServer(cfg.HTTP.Addr, httpapi.RequestLogging(zlog, router), zlog)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		zlog.Error("server stopped", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	_ = redisClient.Close()
	_ = database.Close(db)
}
