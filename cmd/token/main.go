// Command token mints access tokens for the detector and for operators while
// the main auth system is unavailable.
package main

import (
	"ServeTrack/internal/entity"
	jwtPkg "ServeTrack/pkg/jwt"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	id := flag.String("id", "", "user id")
	username := flag.String("username", "", "username")
	email := flag.String("email", "", "email")
	role := flag.String("role", entity.RoleClient, "role: admin or client")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	if *id == "" || *username == "" || *email == "" {
		fmt.Fprintln(os.Stderr, "id, username and email are required")
		flag.Usage()
		os.Exit(2)
	}
	if *role != entity.RoleAdmin && *role != entity.RoleClient {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":       *id,
		"username": *username,
		"email":    *email,
		"role":     *role,
	}, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
