package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/kartavya2004/retail-billing/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	var dsn string

	// Prioritize DATABASE_URL if provided (common on managed hosts)
	if config.AppConfig.Database.URL != "" {
		logrus.Info("using DATABASE_URL for connection")
		dsn = normalizeURL(config.AppConfig.Database.URL)
	} else {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.AppConfig.Database.User,
			config.AppConfig.Database.Password,
			config.AppConfig.Database.Host,
			config.AppConfig.Database.Port,
			config.AppConfig.Database.Name,
		)
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		logrus.WithError(err).Fatal("failed to get database instance")
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logrus.Info("database connection established")
}

// normalizeURL converts mysql:// style URLs to the DSN format the mysql
// driver expects: user:pass@tcp(host:port)/dbname?params
func normalizeURL(raw string) string {
	if !strings.HasPrefix(raw, "mysql://") && !strings.HasPrefix(raw, "mariadb://") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "mysql://")
	raw = strings.TrimPrefix(raw, "mariadb://")

	parts := strings.SplitN(raw, "@", 2)
	if len(parts) != 2 {
		return raw
	}
	creds, rest := parts[0], parts[1]

	hostParts := strings.SplitN(rest, "/", 2)
	if len(hostParts) != 2 {
		return raw
	}
	hostPort, dbName := hostParts[0], hostParts[1]

	params := "?charset=utf8mb4&parseTime=True&loc=Local"
	if strings.Contains(dbName, "?") {
		dbParts := strings.SplitN(dbName, "?", 2)
		dbName = dbParts[0]
		params = "?" + dbParts[1]
	}

	return fmt.Sprintf("%s@tcp(%s)/%s%s", creds, hostPort, dbName, params)
}
