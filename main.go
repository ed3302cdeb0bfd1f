package main

import (
	"dormaid/config"
	"dormaid/database"
	"dormaid/routers"
	"dormaid/utils"
	"log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	notifier := utils.NewNotifier(cfg.SendGridAPIKey, cfg.EmailSender, cfg.EmailSenderName)
	app := routers.NewApp(cfg, db, notifier)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
