package models

// Config contains the runtime configuration of the introspector and CLI
type Config struct {
	// Registry is the path of the package manifest index
	Registry string `mapstructure:"registry"`

	Icon    IconConfig    `mapstructure:"icon"`
	Workers WorkersConfig `mapstructure:"workers"`
	Log     LogConfig     `mapstructure:"log"`
}

// IconConfig controls icon rendering
type IconConfig struct {
	Size int `mapstructure:"size"` // default max dimension in pixels
}

// WorkersConfig sizes the worker pools
type WorkersConfig struct {
	CPU int `mapstructure:"cpu"`
	IO  int `mapstructure:"io"`
}

// LogConfig controls logrus output
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}
