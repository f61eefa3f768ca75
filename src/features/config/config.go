package config

// Config holds the application configuration.
type Config struct {
	Auto         bool        `yaml:"auto" json:"auto"`
	DownloadPath string      `yaml:"downloadPath" json:"downloadPath" validate:"required"`
	Database     Database    `yaml:"database" json:"database"`
	HostLibrary  HostLibrary `yaml:"hostLibrary" json:"hostLibrary"`
	Logger       Logger      `yaml:"logger" json:"logger"`
	Server       Server      `yaml:"server" json:"server"`
	Watcher      Watcher     `yaml:"watcher" json:"watcher"`
	Telegram     Telegram    `yaml:"telegram" json:"telegram"`
}

// Database holds the configuration for the import record database.
type Database struct {
	Path string `yaml:"path" json:"path" validate:"required"`
}

// HostLibrary points at the host manager's own library database. It is
// only ever opened read-only.
type HostLibrary struct {
	Path string `yaml:"path" json:"path" validate:"required"`
}

// Logger holds the configuration for the app logging.
type Logger struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Level   string `yaml:"level" json:"level"`
	Format  string `yaml:"format" json:"format"`
}

// Server holds the configuration for the Fiber server.
type Server struct {
	PrintRoutes bool   `yaml:"show_routes" json:"show_routes"`
	Port        uint32 `yaml:"port" json:"port"`
}

// Watcher holds the configuration for the download-path watcher.
type Watcher struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

type Telegram struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Token   string `yaml:"token" json:"token"`
	ChatID  int64  `yaml:"chat_id" json:"chat_id"`
}
