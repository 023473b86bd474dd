// Tokengen issues bearer tokens for local testing and operator use.
//
//	tokengen -k secret -id 42 -name "Ana" -email ana@example.com -admin
//
// The secret falls back to JWT_SECRET, read from the environment or a .env
// file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/service"
)

func run(args []string) error {
	fs := flag.NewFlagSet("tokengen", flag.ContinueOnError)
	secret := fs.String("k", "", "signing secret, defaults to JWT_SECRET")
	var id service.Identity
	fs.StringVar(&id.UserID, "id", "", "user id (required)")
	fs.StringVar(&id.Name, "name", "", "display name")
	fs.StringVar(&id.Email, "email", "", "email")
	fs.BoolVar(&id.Admin, "admin", false, "grant the admin role")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_ = godotenv.Load()
	if *secret == "" {
		*secret = os.Getenv("JWT_SECRET")
	}
	if *secret == "" {
		return fmt.Errorf("no signing secret: pass -k or set JWT_SECRET")
	}

	token, err := service.NewAuth(*secret, nil, zap.NewNop()).BuildJWTString(id)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "tokengen:", err)
	os.Exit(1)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fail(err)
	}
}
