package main

import (
	"log"

	"PalkhiTrans/CronJobs"
	"PalkhiTrans/FiberConfig"
	"PalkhiTrans/Models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	Models.Connect()

	reminder := CronJobs.NewTransferReminder()
	if err := reminder.Start(); err != nil {
		log.Printf("Failed to start transfer reminder: %v", err)
	}
	defer reminder.Stop()

	FiberConfig.FiberConfig()
}
