package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Billing  BillingConfig
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string
	JWTExpirationHours int
	OTPExpiryMinutes   int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	URL      string
}

type BillingConfig struct {
	// GSTRate is applied twice, once as CGST and once as SGST.
	GSTRate          float64
	PDFRenderTimeout int // seconds
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		logrus.WithError(err).Warn(".env file not found, falling back to environment variables")
	}

	viper.AutomaticEnv()
	viper.BindEnv("SERVER_PORT", "PORT")
	viper.BindEnv("DATABASE_URL")

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 24)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("GST_RATE", 0.09)
	viper.SetDefault("PDF_RENDER_TIMEOUT_SECONDS", 5)

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
			OTPExpiryMinutes:   viper.GetInt("OTP_EXPIRY_MINUTES"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			URL:      viper.GetString("DATABASE_URL"),
		},
		Billing: BillingConfig{
			GSTRate:          viper.GetFloat64("GST_RATE"),
			PDFRenderTimeout: viper.GetInt("PDF_RENDER_TIMEOUT_SECONDS"),
		},
	}

	logrus.WithFields(logrus.Fields{
		"port":    AppConfig.Server.Port,
		"env":     AppConfig.Server.Env,
		"db_host": AppConfig.Database.Host,
		"db_name": AppConfig.Database.Name,
	}).Info("configuration loaded")
}
