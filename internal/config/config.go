package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PiazzaConfig controls the Piazza network this instance watches.
type PiazzaConfig struct {
	Email     string `mapstructure:"email"`
	Password  string `mapstructure:"password"`
	NetworkID string `mapstructure:"network_id"` // trailing segment of the class home URL
	BaseURL   string `mapstructure:"base_url"`
	FetchMax  int    `mapstructure:"fetch_max"` // server-side listing cap
	FetchMin  int    `mapstructure:"fetch_min"`
}

// TelegramConfig controls the chat transport.
type TelegramConfig struct {
	Token    string `mapstructure:"token"`
	ChatID   int64  `mapstructure:"chat_id"`
	Cooldown string `mapstructure:"cooldown"` // per-user command cooldown, e.g. "5s"
}

// DigestConfig controls the daily digest.
type DigestConfig struct {
	Course     string `mapstructure:"course"`      // display name, e.g. CPSC221
	Hour       int    `mapstructure:"hour"`        // UTC hour of delivery
	DisplayCap int    `mapstructure:"display_cap"` // student posts shown before the trailer
	FetchLimit int    `mapstructure:"fetch_limit"` // posts pulled per digest run
	Days       int    `mapstructure:"days"`        // calendar-day window
	ArchiveDir string `mapstructure:"archive_dir"` // empty disables archiving
	Language   string `mapstructure:"language"`
}

// OpenAIConfig controls the optional digest summarizer.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Config is the top-level configuration structure.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Piazza   PiazzaConfig   `mapstructure:"piazza"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Digest   DigestConfig   `mapstructure:"digest"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Piazza.BaseURL == "" {
		c.Piazza.BaseURL = "https://piazza.com"
	}
	if c.Piazza.FetchMax == 0 {
		c.Piazza.FetchMax = 50
	}
	if c.Piazza.FetchMin == 0 {
		c.Piazza.FetchMin = 1
	}
	if c.Telegram.Cooldown == "" {
		c.Telegram.Cooldown = "5s"
	}
	if c.Digest.Hour == 0 {
		c.Digest.Hour = 7
	}
	if c.Digest.DisplayCap == 0 {
		c.Digest.DisplayCap = 10
	}
	if c.Digest.FetchLimit == 0 {
		c.Digest.FetchLimit = 50
	}
	if c.Digest.Days == 0 {
		c.Digest.Days = 1
	}
	if c.Digest.Language == "" {
		c.Digest.Language = "English"
	}
}
