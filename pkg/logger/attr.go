package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// AccountID records the account identifier under the key "account_id".
// If id is empty, it returns an empty Attr.
func AccountID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("account_id", id)
}

// Issuer records the account issuer under the key "issuer".
func Issuer(name string) slog.Attr {
	return slog.String("issuer", name)
}

// Operation records the operation name under the key "operation".
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// State records a lifecycle state under the key "state".
func State(name string) slog.Attr {
	return slog.String("state", name)
}

// StorageKey records a storage key under the key "storage_key".
func StorageKey(key string) slog.Attr {
	return slog.String("storage_key", key)
}

// Count records a number of items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
