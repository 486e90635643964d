package main

import (
	"fmt"
	"os"

	"productapi/internal/cli"
)

// @title Product API
// @version 1.0
// @description CRUD service for the product catalogue.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-KEY
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
