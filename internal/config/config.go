package config

import "github.com/spf13/viper"

type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	PostgresConn  string `mapstructure:"POSTGRES_CONN"`
	PostgresDB    string `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL  string `mapstructure:"MIGRATION_URL"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
}

// LoadConfig reads app.env from path, letting real environment variables
// override file values.
func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("MIGRATION_URL", "file://migrations")
	viper.SetDefault("LOG_LEVEL", "info")

	if err = viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&cfg)

	return
}
