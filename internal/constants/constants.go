package constants

import "time"

const (
	// ContextKeyIdentity is the gin context key holding the verified token identity.
	ContextKeyIdentity = "identity"

	DefaultTokenTTL = 15 * time.Minute
	LoginTokenTTL   = 20 * time.Minute

	MinPriority = 1
	MaxPriority = 5
)
