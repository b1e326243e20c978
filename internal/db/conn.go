package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql" // driver: mysql
)

func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetConnMaxLifetime(30 * time.Minute)
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}
