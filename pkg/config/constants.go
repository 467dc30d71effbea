package config

const (
	// EnvPrefix is passed to envconfig; individual fields carry fully
	// qualified names so this stays empty.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
