package storage

import "time"

// Config selects and configures a storage driver. Only the section matching
// Driver is used.
type Config struct {
	Driver   string `env:"TOTPVAULT_STORAGE_DRIVER" envDefault:"bolt"` // memory, bolt, redis, mongo, postgres or s3
	Bolt     string `env:"TOTPVAULT_BOLT_PATH,expand" envDefault:"${HOME}/.totpvault/vault.db"`
	Redis    RedisConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
	S3       S3Config
}

type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"` // ConnectionURL is the URL of the database. It should be in the format "redis://:password@localhost:6379/0"
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"totpvault:"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

type MongoConfig struct {
	ConnectionURL  string        `env:"MONGODB_URL" envDefault:"mongodb://localhost:27017"`
	Database       string        `env:"MONGODB_DATABASE" envDefault:"totpvault"`
	Collection     string        `env:"MONGODB_COLLECTION" envDefault:"kv"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	RetryAttempts  int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

type PostgresConfig struct {
	ConnectionString string        `env:"PG_CONN_URL" envDefault:"postgres://localhost:5432/totpvault?sslmode=disable"`
	MaxOpenConns     int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"4"`
	MaxIdleConns     int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"1"`
	RetryAttempts    int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
	MigrationsTable  string        `env:"PG_MIGRATIONS_TABLE" envDefault:"totpvault_migrations"`
}

type S3Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`                             // Optional: for S3-compatible services
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"` // For S3-compatible services like MinIO
	Prefix         string `env:"S3_PREFIX" envDefault:"totpvault/"`
}
