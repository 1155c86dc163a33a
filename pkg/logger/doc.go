// Package logger builds the slog loggers used by totpvault.
//
// New returns a *slog.Logger writing JSON at info level to stderr. Options
// change the level, the format and the destination, apply an environment
// preset (WithEnvironment) and register ContextExtractor callbacks that add
// attributes taken from the context of each record.
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "totpvault"),
//	    logger.WithContextExtractors(logger.OperationExtractor, logger.AccountIDExtractor),
//	)
//
//	ctx := logger.WithOperation(context.Background(), "import")
//	log.InfoContext(ctx, "accounts imported", logger.Count(3))
//
// Attribute helpers (Error, AccountID, Issuer, State, StorageKey, Count,
// Component) keep key names consistent across packages. Error and AccountID
// return an empty attribute for empty input, which slog drops.
package logger
