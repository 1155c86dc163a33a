package storage

import "errors"

var (
	ErrNotFound      = errors.New("storage: key not found")
	ErrEmptyKey      = errors.New("storage: key cannot be empty")
	ErrClosed        = errors.New("storage: closed")
	ErrInvalidConfig = errors.New("storage: invalid configuration")
	ErrUnknownDriver = errors.New("storage: unknown driver")

	// Connection errors
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrFailedToConnectToMongo       = errors.New("failed to connect to mongo")
	ErrFailedToParseDBConfig        = errors.New("failed to parse db config")
	ErrFailedToOpenDBConnection     = errors.New("failed to open db connection")
	ErrFailedToApplyMigrations      = errors.New("failed to apply migrations")
	ErrFailedToLoadAWSConfig        = errors.New("failed to load AWS config")
	ErrFailedToOpenBolt             = errors.New("failed to open bolt database")

	// S3 operation errors
	ErrBucketNotFound     = errors.New("storage: bucket not found")
	ErrAccessDenied       = errors.New("storage: access denied")
	ErrOperationTimeout   = errors.New("storage: operation timeout")
	ErrOperationCanceled  = errors.New("storage: operation canceled")
	ErrServiceUnavailable = errors.New("storage: service temporarily unavailable")
)
