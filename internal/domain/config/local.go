package config

// LocalConfig holds per-project defaults saved in .minion/config.local.json.
// Its keys match the viper keys so SetupViper picks them up directly.
type LocalConfig struct {
	From   string `json:"from,omitempty"`
	Store  string `json:"store,omitempty"`
	Format string `json:"format,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyFrom   ConfigKey = "from"
	ConfigKeyStore  ConfigKey = "store"
	ConfigKeyFormat ConfigKey = "format"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyFrom,
		ConfigKeyStore,
		ConfigKeyFormat,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	for _, validKey := range ValidConfigKeys() {
		if string(validKey) == key {
			return true
		}
	}
	return false
}

// Get returns the value stored under key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyFrom:
		return c.From
	case ConfigKeyStore:
		return c.Store
	case ConfigKeyFormat:
		return c.Format
	}
	return ""
}

// Set stores value under key. An empty value clears it.
func (c *LocalConfig) Set(key ConfigKey, value string) {
	switch key {
	case ConfigKeyFrom:
		c.From = value
	case ConfigKeyStore:
		c.Store = value
	case ConfigKeyFormat:
		c.Format = value
	}
}
