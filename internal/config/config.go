package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env  string `yaml:"env" env:"TEBOGEN_ENV" env-default:"local"`
	Spec struct {
		Path string `yaml:"path" env:"TEBOGEN_SPEC" env-default:"botspec.yml"`
	} `yaml:"spec"`
	Telegram struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		ApiKey  string `yaml:"api_key" env:"TEBOGEN_TG_API_KEY" env-default:""`
		BotName string `yaml:"bot_name" env-default:"TebogenBot"`
	} `yaml:"telegram"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:""`
		Password string `yaml:"password" env:"TEBOGEN_MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env-default:"tebogen"`
	} `yaml:"mongo"`
	Export struct {
		Path string `yaml:"path" env-default:""`
	} `yaml:"export"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9200"`
		ApiKey string `yaml:"key" env:"TEBOGEN_API_KEY" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
