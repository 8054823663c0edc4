package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pairchat-service/chat"
	"pairchat-service/config"
	"pairchat-service/controller"
	"pairchat-service/database"
	"pairchat-service/event"
	"pairchat-service/event/listener"
	"pairchat-service/router"
	"pairchat-service/socketio"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	log.SetPrefix("pairchat-service: ")

	rest := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StrictRouting:         true,
		AppName:               "pairchat-service",
	})

	rest.Use(cors.New())

	database.RedisConnect()
	database.PostgresConnect()

	event.RabbitMQConnect([]string{
		// Connect to queues
		"chat",
	})

	// Run chat audit listener
	go listener.Chat()

	// Subscribe listener channel to chat events
	event.RabbitMQSubscribe([]event.RabbitMQSubscribeListener{
		{
			Queue:   "chat",
			Channel: listener.ChatChannel,
		},
	})

	// Init event logs
	event.Init()

	// Wire the conversation core
	registry := chat.NewRegistry()
	broker := chat.NewBroker(registry)
	store := chat.NewGormStore(database.Postgres)
	directory := chat.NewGormDirectory(database.Postgres)
	lastSeen := chat.NewRedisLastSeen(database.Redis[database.TokenDB])
	service := chat.NewService(store, broker, directory, lastSeen)
	controller.Init(service)

	socket := socketio.Init(rest)

	router.Rest(rest)
	router.Socket(socket, service, registry)

	go rest.Listen(fmt.Sprintf(":%s", config.Config("SERVER_PORT")))

	exit := make(chan struct{})
	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	socket.Close(nil)
	event.RabbitMQChannel.Close()
	event.RabbitMQConnection.Close()
	event.InLogFile.Close()
	event.OutLogFile.Close()
	os.Exit(0)
}
