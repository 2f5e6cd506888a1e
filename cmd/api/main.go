package main

import (
	_ "tumblecup_admin/docs"
	"tumblecup_admin/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Tumble Cup Order Console API
// @version         1.0
// @description     Order management console (listing, batch status updates, analytics, CSV export) for Tumble Cup drinkware orders.
// @termsOfService  http://swagger.io/terms/

// @contact.name   Tumble Cup
// @contact.email  teamtumblecup@gmail.com

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey AdminSecret
// @in header
// @name X-Admin-Secret
// @description Shared admin secret required on every console endpoint.

func main() {
	routes.Run()
}
