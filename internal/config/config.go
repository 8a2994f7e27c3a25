package config

type Config struct {
	Journal    JournalConfig  `mapstructure:"journal"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	ConfigPath string         `mapstructure:"-"`
}

type JournalConfig struct {
	Path string `mapstructure:"path"`
}

type LedgerConfig struct {
	// DoubleEntry turns balance enforcement on for the whole book:
	// splits must carry accounts and committed transactions sum to zero.
	DoubleEntry bool `mapstructure:"double_entry"`
}

type DefaultsConfig struct {
	Currency string `mapstructure:"currency"`
}

func NewDefault() *Config {
	return &Config{
		Journal:  JournalConfig{Path: ""},
		Ledger:   LedgerConfig{DoubleEntry: true},
		Defaults: DefaultsConfig{Currency: "USD"},
	}
}
