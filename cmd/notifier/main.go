/**
 * @description
 * This is the main entry point for the notifier service. It consumes
 * notification events emitted by the accounts service, fans them out to
 * the email and sms functions, and publishes an acknowledgement carrying
 * the account number once the sms path has processed the event.
 *
 * @dependencies
 * - The service's internal packages for config, app logic, and messaging.
 * - godotenv for local config and rabbitmq for messaging.
 */
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/eazybank/accounts-service/internal/app"
	"github.com/eazybank/accounts-service/internal/config"
	"github.com/eazybank/accounts-service/internal/eventbus"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	bus, err := eventbus.NewRabbitBus(cfg.RabbitMQURL, cfg.Exchange)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer bus.Close()

	dispatcher := app.NewNotificationDispatcher(bus)

	// Each group gets its own durable queue, so both functions see every
	// notification event independently.
	if err := bus.Subscribe(app.CommunicationChannel, app.EmailSubscriberGroup, dispatcher.HandleEmail); err != nil {
		log.Fatalf("Failed to start email consumer: %v", err)
	}
	if err := bus.Subscribe(app.CommunicationChannel, app.SMSSubscriberGroup, dispatcher.HandleSMS); err != nil {
		log.Fatalf("Failed to start sms consumer: %v", err)
	}

	log.Printf("Notifier is running, consuming %q", app.CommunicationChannel)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down notifier...")
}
