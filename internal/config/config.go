package config

import (
	"log"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	APIURL      string `mapstructure:"API_URL"`
	ChannelURL  string `mapstructure:"CHANNEL_URL"`
	AuthToken   string `mapstructure:"AUTH_TOKEN"`
	LoginURL    string `mapstructure:"LOGIN_URL"`
	ListenAddr  string `mapstructure:"LISTEN_ADDR"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	RosterInterval time.Duration `mapstructure:"ROSTER_INTERVAL"`
	GraceDelay     time.Duration `mapstructure:"GRACE_DELAY"`

	// Lobby entry parameters.
	Invite   string `mapstructure:"INVITE"`
	GameType string `mapstructure:"GAME_TYPE"`
	Winner   string `mapstructure:"WINNER"`
}

var AppConfig *Config

// Flags returns the command-line flags that override entry parameters.
func Flags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("lobbyd", pflag.ContinueOnError)
	flags.String("invite", "", "username to invite as soon as the lobby is ready")
	flags.String("game-type", "", "pre-selected game mode (classic or bonus)")
	flags.String("winner", "", "result of the previous match, shown in the lobby")
	flags.String("listen", "", "address of the local API")
	return flags
}

// LoadConfig loads the configuration from a .env file, environment variables
// and the given flags, in increasing order of precedence.
func LoadConfig(flags *pflag.FlagSet) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.SetDefault("API_URL", "http://localhost:5000")
	v.SetDefault("CHANNEL_URL", "ws://localhost:5000/matchmaking")
	v.SetDefault("LISTEN_ADDR", ":8081")
	v.SetDefault("ROSTER_INTERVAL", 5*time.Second)
	v.SetDefault("GRACE_DELAY", time.Second)
	for _, key := range []string{"AUTH_TOKEN", "LOGIN_URL", "DATABASE_URL", "INVITE", "GAME_TYPE", "WINNER"} {
		v.SetDefault(key, "")
	}

	v.AutomaticEnv()

	if flags != nil {
		bind(v, flags, "INVITE", "invite")
		bind(v, flags, "GAME_TYPE", "game-type")
		bind(v, flags, "WINNER", "winner")
		bind(v, flags, "LISTEN_ADDR", "listen")
	}

	if err := v.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := v.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}

func bind(v *viper.Viper, flags *pflag.FlagSet, key, name string) {
	if f := flags.Lookup(name); f != nil {
		if err := v.BindPFlag(key, f); err != nil {
			log.Fatalf("Unable to bind flag --%s, %v", name, err)
		}
	}
}
