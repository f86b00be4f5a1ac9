package main

import (
	"slotfinder-api/core/logger"
	"slotfinder-api/core/server"
)

// @title SlotFinder API
// @version 1.0
// @description Meeting time suggestion and scoring service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@slotfinder.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
