package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceMongo    = "mongo"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Dataset   Dataset   `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Mongo     Mongo     `mapstructure:",squash"`
	Query     Query     `mapstructure:",squash"`
	RateLimit RateLimit `mapstructure:",squash"`
	Cors      Cors      `mapstructure:",squash"`
}

type App struct {
	LogLevel      string `mapstructure:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFile       string `mapstructure:"log_file"`
	LogJSON       bool   `mapstructure:"log_json"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb" validate:"gte=1"`
	LogMaxBackups int    `mapstructure:"log_max_backups" validate:"gte=0"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port" validate:"required,numeric"`
}

type Dataset struct {
	Source        string `mapstructure:"data_source" validate:"oneof=csv postgres mongo"`
	CSVPath       string `mapstructure:"csv_path" validate:"required"`
	ReloadCron    string `mapstructure:"csv_reload_cron" validate:"required_if=ReloadEnabled true"`
	ReloadEnabled bool   `mapstructure:"csv_reload_enabled"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

type Mongo struct {
	URI        string `mapstructure:"mongodb_uri"`
	Database   string `mapstructure:"mongodb_database"`
	Collection string `mapstructure:"mongodb_collection"`
}

type Query struct {
	DefaultLimit int `mapstructure:"query_default_limit" validate:"gte=1,ltefield=MaxLimit"`
	MaxLimit     int `mapstructure:"query_max_limit" validate:"gte=1"`
	// CacheSize igual a zero desliga o cache de páginas
	CacheSize int `mapstructure:"query_cache_size" validate:"gte=0"`
}

type RateLimit struct {
	Enabled bool    `mapstructure:"rate_limit_enabled"`
	RPS     float64 `mapstructure:"rate_limit_rps" validate:"gt=0"`
	Burst   int     `mapstructure:"rate_limit_burst" validate:"gte=1"`

	// TrustProxy habilita X-Forwarded-For/X-Real-IP na identificação do cliente
	TrustProxy bool `mapstructure:"rate_limit_trust_proxy"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "5000")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("LOG_JSON", false)
	viper.SetDefault("LOG_MAX_SIZE_MB", 50)
	viper.SetDefault("LOG_MAX_BACKUPS", 3)

	viper.SetDefault("DATA_SOURCE", SourceCSV)
	viper.SetDefault("CSV_PATH", "data/sales_data.csv")
	viper.SetDefault("CSV_RELOAD_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("CSV_RELOAD_ENABLED", false)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DATABASE", "retail_sales")
	viper.SetDefault("MONGODB_COLLECTION", "sales")

	viper.SetDefault("QUERY_DEFAULT_LIMIT", 10)
	viper.SetDefault("QUERY_MAX_LIMIT", 100)
	viper.SetDefault("QUERY_CACHE_SIZE", 256)

	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("RATE_LIMIT_TRUST_PROXY", false)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Dataset.Source = strings.ToLower(strings.TrimSpace(config.Dataset.Source))
	config.Cors.AllowedOrigins = trimAll(config.Cors.AllowedOrigins)

	if err := Validate(config); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
		config.Database.SSLMode,
	)

	return config, nil
}

// Validate verifica as regras declaradas nas tags `validate`
func Validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("configuração inválida: %w", err)
	}
	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
