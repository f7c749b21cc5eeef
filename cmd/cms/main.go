package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
)

// @title Tearoom CMS API
// @version 1.0
// @description Public content data and health endpoints of the tearoom site.
// @BasePath /
func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
