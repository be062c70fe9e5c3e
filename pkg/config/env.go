package config

// EnvPrefix is the envconfig namespace for all service settings.
const EnvPrefix = "threadmart"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "THREADMART_DB_DSN"
	EnvDBHost = "THREADMART_DB_HOST"
	EnvDBUser = "THREADMART_DB_USER"
	EnvDBName = "THREADMART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
