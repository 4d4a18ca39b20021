package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// ListeningPortKey is the port where the HTTP interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DbTypeKey selects the storage backend. Either "badger" or "inmemory"
	DbTypeKey = "DB_TYPE"
	// OracleEndpointKey is the base URL of the Hermes price service. Empty
	// selects the static source with prices set by hand
	OracleEndpointKey = "ORACLE_ENDPOINT"
	// AuthorityKey is the identity allowed to mutate protocol configuration
	AuthorityKey = "AUTHORITY"
	// TreasuryKey is the account collecting protocol fees
	TreasuryKey = "TREASURY"
	// ProtocolFeeBpsKey is the protocol fee in basis points
	ProtocolFeeBpsKey = "PROTOCOL_FEE_BPS"
	// EnableMetricsKey exposes a prometheus endpoint on the HTTP interface
	EnableMetricsKey = "ENABLE_METRICS"

	DbLocation = "db"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("SOLATION")
	vip.AutomaticEnv()

	vip.SetDefault(ListeningPortKey, 9000)
	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DbTypeKey, "badger")
	vip.SetDefault(OracleEndpointKey, "")
	vip.SetDefault(AuthorityKey, "admin")
	vip.SetDefault(TreasuryKey, "treasury")
	vip.SetDefault(ProtocolFeeBpsKey, 0)
	vip.SetDefault(EnableMetricsKey, true)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	switch dbType := GetString(DbTypeKey); dbType {
	case "badger", "inmemory":
	default:
		return fmt.Errorf("db type must be either 'badger' or 'inmemory', got '%s'", dbType)
	}

	feeBps := GetInt(ProtocolFeeBpsKey)
	if feeBps < 0 || feeBps > 10000 {
		return fmt.Errorf("protocol fee must be in range [0, 10000] basis points")
	}

	if len(GetString(AuthorityKey)) <= 0 {
		return fmt.Errorf("authority must not be null")
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".solationd"
	}
	return filepath.Join(home, ".solationd")
}
