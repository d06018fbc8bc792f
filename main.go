package main

import (
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/yeremiapane/reservation-app/config"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/router"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
	"github.com/yeremiapane/reservation-app/worker"
)

func main() {
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		// Tidak fatal, environment bisa diset dari luar
		utils.InfoLogger.Println("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg.DatabaseDSN)
	if err != nil {
		utils.ErrorLogger.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Reservation{},
		&models.Invoice{},
		&models.Refund{},
		&models.Disbursement{},
		&models.ReservationSummary{},
		&models.TableCounter{},
		&models.Customer{},
		&models.User{},
	); err != nil {
		utils.ErrorLogger.Fatalf("failed to migrate database: %v", err)
	}

	queue := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer queue.Close()

	// Wiring service
	xendit := services.NewXenditService(cfg.XenditAPIKey)
	wa := services.NewWhatsAppService(cfg.WhatsAppURI, cfg.WhatsAppToken)
	counters := services.NewCounterService(db)
	invoices := services.NewInvoiceService(db, xendit, queue, wa)
	webhooks := services.NewWebhookService(db, counters, queue, cfg.ReceiptBaseURL)
	otp := services.NewOtpService(db, queue)
	grist := services.NewGristService(cfg.GristServer, cfg.GristDocID, cfg.GristAPIKey)

	// Worker asynq untuk task tunda dan pengiriman WhatsApp
	w := worker.New(cfg.RedisAddr, invoices, wa)
	if err := w.Start(); err != nil {
		utils.ErrorLogger.Fatalf("failed to start task worker: %v", err)
	}
	defer w.Shutdown()

	r := router.SetupRouter(router.Deps{
		DB:       db,
		Invoices: invoices,
		Webhooks: webhooks,
		Otp:      otp,
		Xendit:   xendit,
		Grist:    grist,
	})

	utils.InfoLogger.Printf("server listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("failed to start server: %v", err)
	}
}
