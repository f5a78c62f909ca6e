package config

import (
	"fmt"
	"os"

	"github.com/pierreleocadie/SecuraLedger/pkg/keypair"
	"github.com/pierreleocadie/SecuraLedger/pkg/utils"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Storage
	DataDir         string `yaml:"dataDir"`
	Backend         string `yaml:"backend"`
	BlockchainFile  string `yaml:"blockchainFile"`
	PrivateKeysFile string `yaml:"privateKeysFile"`
	DatabaseDir     string `yaml:"databaseDir"`
	FileRights      int    `yaml:"fileRights"`
	DirRights       int    `yaml:"dirRights"`

	// Keys
	KeyScheme string `yaml:"keyScheme"`
	KeyBits   int    `yaml:"keyBits"`

	LogLevel string `yaml:"logLevel"`
}

// DefaultConfig returns the configuration used when no yaml file is given.
func DefaultConfig() *Config {
	return &Config{
		DataDir:         DataDir,
		Backend:         BackendFile,
		BlockchainFile:  BlockchainFile,
		PrivateKeysFile: PrivateKeysFile,
		DatabaseDir:     DatabaseDir,
		FileRights:      FileRights,
		DirRights:       DirRights,
		KeyScheme:       keypair.SchemeRSA,
		KeyBits:         keypair.DefaultRSABits,
		LogLevel:        LogLevel,
	}
}

// LoadConfig loads the yaml config file. Keys missing from the file keep their default value.
func LoadConfig(yamlConfigFilePath string) (*Config, error) {
	config := DefaultConfig()
	if yamlConfigFilePath == "" {
		return config, nil
	}

	sanitizedPath, err := utils.SanitizePath(yamlConfigFilePath)
	if err != nil {
		return nil, err
	}
	configBytes, err := os.ReadFile(sanitizedPath) // #nosec G304
	if err != nil {
		return nil, err
	}

	// Unmarshal the config file
	err = yaml.Unmarshal(configBytes, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file %s : %w", sanitizedPath, err)
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendPebble, BackendLevelDB:
	default:
		return fmt.Errorf("invalid backend: %s. Valid backends are: %s|%s|%s", c.Backend, BackendFile, BackendLevelDB, BackendPebble)
	}

	switch c.KeyScheme {
	case keypair.SchemeRSA:
		if c.KeyBits <= 0 {
			return fmt.Errorf("invalid key size: %d", c.KeyBits)
		}
	case keypair.SchemeEd25519:
	default:
		return fmt.Errorf("invalid key scheme: %s", c.KeyScheme)
	}

	if c.BlockchainFile == "" || c.PrivateKeysFile == "" {
		return fmt.Errorf("missing document name")
	}
	if c.BlockchainFile == c.PrivateKeysFile {
		return fmt.Errorf("blockchain and private keys documents must differ")
	}

	return nil
}
