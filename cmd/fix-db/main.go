package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// Утилита для ручной починки грязного состояния миграций.
// Использование: go run ./cmd/fix-db -version 1 [-dsn "..."]
func main() {
	defaultDSN := os.Getenv("DATABASE_DSN")
	if defaultDSN == "" {
		defaultDSN = "host=localhost port=5432 user=postgres password=123456 dbname=engage_db sslmode=disable"
	}

	dsn := flag.String("dsn", defaultDSN, "строка подключения к PostgreSQL")
	version := flag.Int("version", 1, "версия миграции, на которую сбрасываем грязное состояние")
	flag.Parse()

	db, err := sql.Open("postgres", *dsn)
	if err != nil {
		log.Fatalf("Не удалось открыть соединение: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("База недоступна: %v", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatalf("Не удалось создать драйвер миграций: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatalf("Не удалось инициализировать мигратор: %v", err)
	}

	log.Printf("Сбрасываем версию миграций на %d...", *version)
	if err := m.Force(*version); err != nil {
		log.Fatalf("Force(%d) завершился ошибкой: %v", *version, err)
	}

	log.Println("Готово: грязное состояние снято, приложение можно запускать.")
}
