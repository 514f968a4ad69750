package main

import (
	"fmt"
	"os"

	_ "Backend-Schoolhub/docs"
	"Backend-Schoolhub/src/cli"
)

// @title           Schoolhub Quiz API
// @version         1.0
// @description     Multi-tenant school quiz service: authoring, attempts, scoring and leaderboards.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
