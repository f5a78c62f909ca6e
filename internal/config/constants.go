package config

const (
	DataDir         = "."
	BlockchainFile  = "blockchain.json"
	PrivateKeysFile = "private_keys.json"
	DatabaseDir     = "ledgerdb"
	FileRights      = 0600
	DirRights       = 0700
	LogLevel        = "info"

	BackendFile    = "file"
	BackendPebble  = "pebble"
	BackendLevelDB = "leveldb"
)
