package driver

import (
	"database/sql"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

func ConnectDB() *sql.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(127.0.0.1:3306)/deserveiq?multiStatements=true"
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	return db
}

// MigrateDB applies pending migrations from the migrations directory.
func MigrateDB(db *sql.DB) {
	d, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		log.Fatal("Failed to init migration driver: ", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "mysql", d)
	if err != nil {
		log.Fatal("Failed to init migrations: ", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Migration failed: ", err)
	}
}
