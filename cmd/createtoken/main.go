package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/config"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/security"
)

func main() {
	user := flag.String("user", "admin", "user name to embed in the token")
	role := flag.String("role", "admin", "role claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		UserName: *user,
		Role:     *role,
	}, cfg.JWTSecret, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
