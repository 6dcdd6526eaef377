package db

import (
	"fmt"
	"net/url"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"tasktracker/internal/config"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const (
	defaultMySQLParams    = "parseTime=true&loc=UTC&multiStatements=true"
	defaultPostgresParams = "sslmode=disable"
)

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	dsn, err := DSN(conf)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(conf.DbDriver, dsn)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func DSN(conf *config.Config) (string, error) {
	params := conf.DbParams

	switch conf.DbDriver {
	case DriverMySQL:
		if params == "" {
			params = defaultMySQLParams
		}
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?%s",
			conf.DbUser,
			conf.DbPassword,
			conf.DbHost,
			conf.DbPort,
			conf.DbName,
			params,
		), nil
	case DriverPostgres:
		if params == "" {
			params = defaultPostgresParams
		}
		dsn := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(conf.DbUser, conf.DbPassword),
			Host:     conf.DbHost + ":" + conf.DbPort,
			Path:     "/" + conf.DbName,
			RawQuery: params,
		}
		return dsn.String(), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", conf.DbDriver)
	}
}
