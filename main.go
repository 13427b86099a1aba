package main

import (
	"log"

	"netlab/config"
	labControllers "netlab/controllers/lab"
	submissionControllers "netlab/controllers/submission"
	"netlab/database"
	labRoutes "netlab/routers/labRoutes"
	submissionRoutes "netlab/routers/submissionRoutes"
	"netlab/services"
	"netlab/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	labService := services.NewLabService(db)
	submissionService := services.NewSubmissionService(db, config.AppConfig.UploadDir)

	app := fiber.New(fiber.Config{
		BodyLimit: config.AppConfig.MaxUploadSizeMB * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded submission files
	app.Static("/uploads", config.AppConfig.UploadDir)

	labRoutes.SetupLabRoutes(app, labControllers.NewLabController(db, labService))
	submissionRoutes.SetupSubmissionRoutes(app, submissionControllers.NewSubmissionController(db, submissionService))

	utils.InitializeCleanupScheduler(db)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
