package config

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" envDefault:"sqlite"`
	Server     string `env:"DB_HOST" envDefault:"localhost:3306"`
	Database   string `env:"DB_NAME" envDefault:"sway_pr"`
	User       string `env:"DB_USER" envDefault:"sway"`
	Password   string `env:"DB_PASSWORD"`
	SQLitePath string `env:"DB_PATH" envDefault:"company_data.db"`
	MaxOpen    int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdle    int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
}

func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == DriverSQLite {
		return SQLiteDSN(c.SQLitePath)
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4&clientFoundRows=true",
		c.User, c.Password, c.Server, c.Database)
}

// SQLiteDSN enables foreign keys and a busy timeout on every pooled connection.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

func ConnectDatabase(c *DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(c.Driver, c.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	db.SetMaxOpenConns(c.MaxOpen)
	db.SetMaxIdleConns(c.MaxIdle)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	return db, nil
}
