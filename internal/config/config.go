package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"PORT" env-default:"3000"`
	WordsPath  string `yaml:"words-path" env:"WORDS_PATH" env-default:"words.yml"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Game holds the round pacing knobs: how long the room lingers on a skipped
// vote before play resumes, and how long the game-over screen stays up
// before everyone is sent back to the lobby.
type Game struct {
	ResumeDelay time.Duration `yaml:"resume-delay" env:"GAME_RESUME_DELAY" env-default:"3s"`
	LobbyDelay  time.Duration `yaml:"lobby-delay" env:"GAME_LOBBY_DELAY" env-default:"9s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
