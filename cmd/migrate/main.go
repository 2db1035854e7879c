package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"shodart.org/internal/auth"
	"shodart.org/internal/migrate"
	"shodart.org/internal/user"
)

func main() {
	log.SetFlags(0)
	var (
		dsn            = flag.String("dsn", os.Getenv("SHODART_PG_DSN"), "PostgreSQL DSN")
		migrationsPath = flag.String("migrations", "ops/migrations/sql", "Path to SQL migrations")
	)
	flag.Parse()

	if *dsn == "" {
		log.Fatal("missing DSN: provide via -dsn or SHODART_PG_DSN")
	}
	if len(flag.Args()) == 0 {
		log.Fatal("usage: migrate [up|down|seed|status]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	mgr := migrate.NewManager(db, *migrationsPath)

	switch flag.Arg(0) {
	case "up":
		err = mgr.Up(ctx)
	case "down":
		err = mgr.Down(ctx)
	case "seed":
		err = seedAdmin(ctx, db)
	case "status":
		var history []string
		history, err = mgr.Status(ctx)
		if err == nil {
			for _, item := range history {
				fmt.Println(item)
			}
		}
	default:
		log.Fatalf("unknown command %q", flag.Arg(0))
	}
	if err != nil {
		log.Fatalf("migrate %s: %v", flag.Arg(0), err)
	}
}

// seedAdmin создаёт стартовую учётку администратора. Пароль хешируется
// здесь, поэтому сид не может быть обычным SQL-файлом. Повторный запуск
// безопасен.
func seedAdmin(ctx context.Context, db *sql.DB) error {
	login := os.Getenv("SHODART_ADMIN_LOGIN")
	if login == "" {
		login = "admin"
	}
	password := os.Getenv("SHODART_ADMIN_PASSWORD")
	if password == "" {
		password = "password123"
	}

	users := user.NewService(user.NewPGStore(db))
	_, err := users.Create(ctx, user.CreateInput{
		Login:           login,
		Password:        password,
		Role:            auth.RoleRoot,
		CanEditProducts: true,
	})
	if errors.Is(err, user.ErrLoginExists) {
		log.Printf("admin %q already exists, nothing to do", login)
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("seeded admin %q", login)
	return nil
}
