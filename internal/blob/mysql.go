package blob

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQL keeps blobs in a single kv_blobs table. It exists for
// deployments that already run MySQL and do not want a second data
// service next to it.
type MySQL struct {
	db *sql.DB
}

// OpenMySQL connects to MySQL, verifies the connection and makes sure
// the kv_blobs table exists.
func OpenMySQL(user, pass, host, port, name string) (*MySQL, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS kv_blobs (k VARCHAR(191) PRIMARY KEY, v LONGTEXT NOT NULL) CHARACTER SET utf8mb4"); err != nil {
		return nil, err
	}
	return &MySQL{db: db}, nil
}

func (m *MySQL) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := m.db.QueryRowContext(ctx, "SELECT v FROM kv_blobs WHERE k=? LIMIT 1", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (m *MySQL) Set(ctx context.Context, key, value string) error {
	_, err := m.db.ExecContext(ctx,
		"INSERT INTO kv_blobs (k, v) VALUES (?,?) ON DUPLICATE KEY UPDATE v=VALUES(v)", key, value)
	return err
}

func (m *MySQL) Delete(ctx context.Context, key string) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM kv_blobs WHERE k=?", key)
	return err
}
