package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sitehatch/market-backend/internal/application"
	"github.com/sitehatch/market-backend/internal/application/commands/chat"
	"github.com/sitehatch/market-backend/internal/application/commands/knowledge"
	"github.com/sitehatch/market-backend/internal/application/commands/order"
	"github.com/sitehatch/market-backend/internal/application/commands/payment"
	"github.com/sitehatch/market-backend/internal/application/commands/template"
	"github.com/sitehatch/market-backend/internal/application/processors"
	"github.com/sitehatch/market-backend/internal/application/query"
	"github.com/sitehatch/market-backend/internal/infra/cache"
	ai "github.com/sitehatch/market-backend/internal/infra/client/openai"
	"github.com/sitehatch/market-backend/internal/infra/config"
	"github.com/sitehatch/market-backend/internal/infra/mail"
	"github.com/sitehatch/market-backend/internal/infra/storage"
	"github.com/sitehatch/market-backend/internal/presentation/rest"
	"github.com/sitehatch/market-backend/internal/presentation/scheduler"
	"github.com/sitehatch/market-backend/internal/presentation/ws"
	"github.com/sitehatch/market-backend/pkg/db"
)

func Init() {
	// DB
	dbConfig := db.NewConfig()
	pool, err := pgxpool.New(context.Background(), dbConfig.GetDSN())
	if err != nil {
		log.Panicf("failed to create pool: %v", err)
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Panicf("failed to connect to db: %v", err)
	}
	uowFactory := db.NewUoWFactory(pool)

	// Configs
	serverConfig := config.NewServerConfig()
	mailConfig := mail.NewMailConfig()
	paymentConfig := payment.NewPaymentConfig()
	outboxConfig := scheduler.NewOutboxConfig()
	guardConfig := cache.NewGuardConfig()

	mailServer := mail.NewMailServer(mailConfig)
	submitGuard := cache.NewSubmitGuard(guardConfig)

	// AWS
	cfg, err := awsConfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Panic("can't load aws config", err)
	}
	s3 := storage.NewStorage(cfg)

	hub := ws.NewHub()
	go hub.Run()

	assistant := ai.NewOpenAIClient(ai.NewOpenAIConfig())

	handlers := &application.Handlers{
		SubmitOrder:    order.NewSubmitOrder(uowFactory, s3, submitGuard, serverConfig.UploadPrefix),
		DeleteOrder:    order.NewDeleteOrder(uowFactory),
		CreateTemplate: template.NewCreateTemplate(uowFactory),
		UpdateTemplate: template.NewUpdateTemplate(uowFactory),
		DeleteTemplate: template.NewDeleteTemplate(uowFactory),
		Knowledge:      knowledge.NewKnowledge(uowFactory),
		PostMessage:    chat.NewPostMessage(uowFactory, hub),
		Assist:         chat.NewAssist(uowFactory, assistant),
		Checkout:       payment.NewCheckout(uowFactory, paymentConfig),
		GetQuote:       query.NewGetQuote(uowFactory),
		ListTemplates:  query.NewListTemplates(uowFactory),
		GetOrders:      query.NewGetOrders(uowFactory),
		GetMessages:    query.NewGetMessages(uowFactory),
	}
	handler := rest.NewServer(handlers, s3)
	app := fiber.New(fiber.Config{
		IdleTimeout: 5 * time.Second,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     serverConfig.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Admin-Token",
		AllowCredentials: true,
	}))
	rest.RegisterHandlers(app, handler, hub, serverConfig)

	outboxPoller := scheduler.NewOutboxPoller(&application.Processors{
		SendMail: processors.NewSendMail(mailServer, uowFactory),
	}, uowFactory, outboxConfig)
	go outboxPoller.Start()

	go func() {
		if err := app.Listen(":" + serverConfig.Port); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	fmt.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	outboxPoller.Stop()

	fmt.Println("Running cleanup tasks...")

	uowFactory.Pool.Close()
	fmt.Println("Fiber was successfully shutdown.")
}
