package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/auth"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/cyclic"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/employees"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/movement"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/orders"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/application/stock"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/infrastructure/db"
	httpRouter "github.com/SistemasTACTSUPP/tactical-inventory/internal/interfaces/http"
	"github.com/SistemasTACTSUPP/tactical-inventory/internal/notify"
	"github.com/SistemasTACTSUPP/tactical-inventory/pkg/config"
	"github.com/SistemasTACTSUPP/tactical-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer database.Close()

	txRunner := db.NewTxRunner(database)
	repos := txRunner.Repos()
	userRepo := db.NewUserRepository(database.Pool, database.Dialect())

	hub := notify.NewHub(log.Zerolog())

	// Sumidero de entrega: los eventos post-commit se consumen y registran.
	// Un fallo aquí jamás afecta la transacción que los originó.
	events, unsubscribe := hub.Subscribe()
	defer unsubscribe()
	go func() {
		for ev := range events {
			log.Debug().
				Str("event_id", ev.ID).
				Str("kind", ev.Kind).
				Int64("ref_id", ev.RefID).
				Msg("evento de cambio entregado")
		}
	}()

	zl := log.Zerolog()
	authUC := auth.NewUseCase(userRepo, cfg.JWT, zl)
	stockUC := stock.NewUseCase(txRunner, repos, hub, zl)
	entryUC := movement.NewEntryUseCase(txRunner, repos, hub, zl)
	dispatchUC := movement.NewDispatchUseCase(txRunner, repos, hub, zl)
	recoveryUC := movement.NewRecoveryUseCase(txRunner, repos, hub, zl)
	cyclicUC := cyclic.NewUseCase(txRunner, repos, hub, zl)
	orderUC := orders.NewUseCase(txRunner, repos, hub, zl)
	employeeUC := employees.NewUseCase(txRunner, repos, zl)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		StockUC:    stockUC,
		EntryUC:    entryUC,
		DispatchUC: dispatchUC,
		RecoveryUC: recoveryUC,
		CyclicUC:   cyclicUC,
		OrderUC:    orderUC,
		EmployeeUC: employeeUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
