package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pk-services/pks/key"
	"github.com/spf13/viper"
)

// settings is the subset of configuration values with constraints beyond their type.
type settings struct {
	Timeout    int    `validate:"gte=0"`
	TorAddress string `validate:"required,hostname_port"`
	Strategy   string `validate:"oneof=xpath stream"`
	MaxHeight  int    `validate:"gte=0"`
	Player     string `validate:"omitempty,oneof=dummy mpv ffplay vlc"`
	Batch      int    `validate:"gte=1"`
	Height     int    `validate:"gte=1"`
	Icons      string `validate:"oneof=emoji nerd plain"`
}

var validate = validator.New()

// Validate checks the loaded configuration against the constraints of each key.
func Validate() error {
	s := settings{
		Timeout:    viper.GetInt(key.NetworkTimeout),
		TorAddress: viper.GetString(key.NetworkTorAddress),
		Strategy:   viper.GetString(key.ScrapeStrategy),
		MaxHeight:  viper.GetInt(key.ExtractMaxHeight),
		Player:     viper.GetString(key.PlayerDefault),
		Batch:      viper.GetInt(key.PlaylistBatch),
		Height:     viper.GetInt(key.PlaylistHeight),
		Icons:      viper.GetString(key.CliIcons),
	}

	if err := validate.Struct(&s); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
