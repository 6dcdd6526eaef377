//go:build integration
// +build integration

package tests

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	dbadapter "tasktracker/internal/adapter/db"
	"tasktracker/internal/config"
)

// IntegrationSuiteBase runs against the engine named by TEST_DB_DRIVER
// (mysql or postgres) and a throwaway database whose name ends in _test.
type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	Driver     string
	testDBName string
}

func (s *IntegrationSuiteBase) SetupSuite() {
	driver := strings.ToLower(envOrDefault("TEST_DB_DRIVER", dbadapter.DriverMySQL))
	conf := &config.Config{
		DbDriver:   driver,
		DbHost:     envOrDefault("TEST_DB_HOST", "127.0.0.1"),
		DbPort:     envOrDefault("TEST_DB_PORT", defaultTestPort(driver)),
		DbUser:     envOrDefault("TEST_DB_USER", defaultTestUser(driver)),
		DbPassword: envOrDefault("TEST_DB_PASSWORD", "root"),
		DbName:     adminDatabase(driver),
		DbParams:   os.Getenv("TEST_DB_PARAMS"),
	}
	database := envOrDefault("TEST_DB_NAME", "tasktracker_test")

	adminDB, err := dbadapter.ConnectDB(conf)
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to %s: %v", driver, err)
	}
	s.adminDB = adminDB

	s.Require().NoError(createDatabase(adminDB, driver, database))

	conf.DbName = database
	db, err := dbadapter.ConnectDB(conf)
	s.Require().NoError(err)
	s.DB = db
	s.Driver = driver
	s.testDBName = database
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}

	if s.adminDB != nil && s.testDBName != "" && strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", quoteIdent(s.Driver, s.testDBName)))
		s.Require().NoError(err)
	}

	if s.adminDB != nil {
		s.Require().NoError(s.adminDB.Close())
	}
}

func (s *IntegrationSuiteBase) ResetDatabase() {
	_, err := s.DB.Exec("DROP TABLE IF EXISTS tasks")
	s.Require().NoError(err)
	s.Require().NoError(dbadapter.Migrate(context.Background(), s.DB))
}

func createDatabase(db *sqlx.DB, driver, name string) error {
	if driver == dbadapter.DriverMySQL {
		_, err := db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", quoteIdent(driver, name)))
		return err
	}

	var exists bool
	if err := db.Get(&exists, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", name); err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", quoteIdent(driver, name)))
	return err
}

func quoteIdent(driver, name string) string {
	if driver == dbadapter.DriverMySQL {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

func adminDatabase(driver string) string {
	if driver == dbadapter.DriverPostgres {
		return "postgres"
	}
	return "mysql"
}

func defaultTestPort(driver string) string {
	if driver == dbadapter.DriverPostgres {
		return "5432"
	}
	return "3306"
}

func defaultTestUser(driver string) string {
	if driver == dbadapter.DriverPostgres {
		return "postgres"
	}
	return "root"
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
