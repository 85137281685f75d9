package testinfra

import (
	"context"
	"log"
	"os"
	"strings"

	"timelogger/domain"
	"timelogger/persistence"

	"github.com/google/uuid"
)

type TestDatabase struct {
	TestDatabaseName string
	DS               *persistence.DataSourceManager
}

// StartTestDatabase migrates a fresh database and installs it as the active data source.
// It runs against mysql when TEST_MYSQL_SERVICE is set, against in-memory sqlite otherwise.
func StartTestDatabase(baseName string) *TestDatabase {
	var testDatabase *TestDatabase
	if os.Getenv("TEST_MYSQL_SERVICE") != "" {
		testDatabase = StartMysqlTestDatabase(baseName)
	} else {
		testDatabase = StartSqliteTestDatabase(baseName)
	}
	if err := domain.AutoMigrate(testDatabase.DS.GormDB(context.Background())); err != nil {
		log.Fatalf("database migration failed %v\n", err)
	}
	persistence.ActiveDataSourceManager = testDatabase.DS
	return testDatabase
}

func StartSqliteTestDatabase(baseName string) *TestDatabase {
	databaseName := testDatabaseName(baseName)
	dbConfig := &persistence.DatabaseConfig{
		DriverType: persistence.DriverSqlite, DriverArgs: "file:" + databaseName + "?mode=memory&cache=shared",
	}
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		log.Fatalf("database conneciton failed %v\n", err)
	}
	return &TestDatabase{TestDatabaseName: databaseName, DS: ds}
}

// StartMysqlTestDatabase TEST_MYSQL_SERVICE=root:root@(127.0.0.1:3306)
func StartMysqlTestDatabase(baseName string) *TestDatabase {
	mysqlSvc := os.Getenv("TEST_MYSQL_SERVICE")
	if mysqlSvc == "" {
		mysqlSvc = "root:root@(127.0.0.1:3306)"
	}
	databaseName := testDatabaseName(baseName)

	dbConfig := &persistence.DatabaseConfig{
		DriverType: persistence.DriverMysql,
		DriverArgs: mysqlSvc + "/" + databaseName + "?charset=utf8mb4&parseTime=True&loc=UTC&timeout=5s",
	}

	// create database (no conflict)
	if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
		log.Fatalf("failed to prepare database %v\n", err)
	}

	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		defer ds.Stop()
		log.Fatalf("database conneciton failed %v\n", err)
	}
	return &TestDatabase{TestDatabaseName: databaseName, DS: ds}
}

func StopTestDatabase(testDatabase *TestDatabase) {
	if testDatabase == nil || testDatabase.DS == nil {
		return
	}
	if testDatabase.DS.DatabaseConfig.DriverType == persistence.DriverMysql {
		db := testDatabase.DS.GormDB(context.Background())
		if err := db.Exec("DROP DATABASE " + testDatabase.TestDatabaseName).Error; err != nil {
			log.Println("failed to drop test database: " + testDatabase.TestDatabaseName)
		} else {
			log.Println("test database " + testDatabase.TestDatabaseName + " dropped")
		}
	}
	testDatabase.DS.Stop()
}

func testDatabaseName(baseName string) string {
	return baseName + "_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
