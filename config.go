package pagekit

import "github.com/goliatone/go-pagekit/internal/runtimeconfig"

var (
	ErrHandleRequired         = runtimeconfig.ErrHandleRequired
	ErrDebounceInvalid        = runtimeconfig.ErrDebounceInvalid
	ErrCacheKeyRequired       = runtimeconfig.ErrCacheKeyRequired
	ErrHistoryLimitInvalid    = runtimeconfig.ErrHistoryLimitInvalid
	ErrLocalDriverUnknown     = runtimeconfig.ErrLocalDriverUnknown
	ErrLocalDSNRequired       = runtimeconfig.ErrLocalDSNRequired
	ErrRemoteProviderUnknown  = runtimeconfig.ErrRemoteProviderUnknown
	ErrRemoteURLRequired      = runtimeconfig.ErrRemoteURLRequired
	ErrRemoteDSNRequired      = runtimeconfig.ErrRemoteDSNRequired
	ErrRemoteSQLDriverUnknown = runtimeconfig.ErrRemoteSQLDriverUnknown
	ErrRemoteBucketRequired   = runtimeconfig.ErrRemoteBucketRequired
	ErrRemoteTimeoutInvalid   = runtimeconfig.ErrRemoteTimeoutInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config            = runtimeconfig.Config
	PersistenceConfig = runtimeconfig.PersistenceConfig
	HistoryConfig     = runtimeconfig.HistoryConfig
	LocalConfig       = runtimeconfig.LocalConfig
	RemoteConfig      = runtimeconfig.RemoteConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
