package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port         string
	Env          string
	JWTSecret    string
	DB           DBConfig
	RedisAddr    string
	KafkaBrokers []string
	Policy       PolicyConfig
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// PolicyConfig holds the statutory values used by the payroll and vacation
// calculators. They are legally mandated and change over time, so they are
// loaded from the environment rather than compiled in. The defaults reflect
// the 2024 Brazilian reference values.
type PolicyConfig struct {
	VacationEntitlementDays int
	ReferenceWage           decimal.Decimal
	InsalubrityRate         decimal.Decimal
	NightShiftRate          decimal.Decimal
	OvertimeMultiplier      decimal.Decimal
}

func Load() Config {
	return Config{
		Port:      getEnv("PORT", "3000"),
		Env:       getEnv("APP_ENV", "development"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "gestaorh"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		Policy:       LoadPolicy(),
	}
}

func LoadPolicy() PolicyConfig {
	return PolicyConfig{
		VacationEntitlementDays: getEnvInt("VACATION_ENTITLEMENT_DAYS", 30),
		ReferenceWage:           getEnvDecimal("PAYROLL_REFERENCE_WAGE", "1412.00"),
		InsalubrityRate:         getEnvDecimal("PAYROLL_INSALUBRITY_RATE", "0.20"),
		NightShiftRate:          getEnvDecimal("PAYROLL_NIGHT_SHIFT_RATE", "0.20"),
		OvertimeMultiplier:      getEnvDecimal("PAYROLL_OVERTIME_MULTIPLIER", "1.5"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDecimal(key, fallback string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(fallback)
}
