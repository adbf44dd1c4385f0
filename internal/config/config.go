package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration shared by the API and the queue consumers.
// Every binary loads the whole set and reads what it needs.
type Config struct {
	Region           string
	EndpointOverride string // LocalStack and friends

	RequestsTable string
	TopicARN      string
	EventBusName  string
	EventSource   string

	// CountryISO binds a fulfillment process to one country.
	CountryISO string
	Countries  []string
	// CountryQueueURLs routes request-created messages straight to SQS when no topic is configured.
	CountryQueueURLs map[string]string

	DBPool DBPool

	MetricsNamespace string
	LogLevel         string

	RunLocal     bool
	Port         string
	LocalSQSBody string
}

// DBPool tunes database/sql pooling for the relational writers.
type DBPool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// CountryDB holds the connection settings of one country's relational store.
type CountryDB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Load reads an optional .env file and then the environment.
func Load() Config {
	_ = godotenv.Load()

	countries := splitList(stringFromEnv("SUPPORTED_COUNTRIES", "PE,CL"))
	queues := map[string]string{}
	for _, c := range countries {
		if u := os.Getenv("COUNTRY_QUEUE_URL_" + c); u != "" {
			queues[c] = u
		}
	}

	return Config{
		Region:           stringFromEnv("AWS_REGION", "us-east-1"),
		EndpointOverride: os.Getenv("AWS_ENDPOINT_OVERRIDE"),
		RequestsTable:    stringFromEnv("APPOINTMENTS_REQUEST_TABLE", "appointments-requests-dev"),
		TopicARN:         os.Getenv("SNS_TOPIC_ARN"),
		EventBusName:     stringFromEnv("EVENT_BUS_NAME", "event_bus_appointments"),
		EventSource:      stringFromEnv("EVENT_SOURCE", "appointments.source"),
		CountryISO:       strings.ToUpper(strings.TrimSpace(os.Getenv("COUNTRY_ISO"))),
		Countries:        countries,
		CountryQueueURLs: queues,
		DBPool: DBPool{
			MaxOpenConns:    intFromEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    intFromEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,
			ConnMaxIdleTime: time.Duration(intFromEnv("DB_CONN_MAX_IDLE_TIME_SECONDS", 60)) * time.Second,
		},
		MetricsNamespace: stringFromEnv("METRICS_NAMESPACE", "AppointmentFlow"),
		LogLevel:         stringFromEnv("LOG_LEVEL", "info"),
		RunLocal:         os.Getenv("RUN_LOCAL") == "true",
		Port:             stringFromEnv("PORT", "8080"),
		LocalSQSBody:     os.Getenv("LOCAL_SQS_BODY"),
	}
}

// CountryDB returns the relational settings for iso, read from DB_*_<ISO> variables.
func (c Config) CountryDB(iso string) CountryDB {
	iso = strings.ToUpper(iso)
	return CountryDB{
		Host:     stringFromEnv("DB_HOST_"+iso, "localhost"),
		Port:     stringFromEnv("DB_PORT_"+iso, "3306"),
		User:     stringFromEnv("DB_USERNAME_"+iso, "root"),
		Password: os.Getenv("DB_PASSWORD_" + iso),
		Name:     stringFromEnv("DB_NAME_"+iso, "appointment_db"),
	}
}

func stringFromEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		p := strings.ToUpper(strings.TrimSpace(part))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
