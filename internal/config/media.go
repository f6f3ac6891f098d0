package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Media struct {
	Dir         string
	ContentType string
	Extensions  []string
}

func (Media) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().String("media-dir", "./media", "directory with uploaded videos")
	if err := viper.BindPFlag("media-dir", cmd.PersistentFlags().Lookup("media-dir")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("content-type", "video/mp4", "content type of streamed videos")
	if err := viper.BindPFlag("content-type", cmd.PersistentFlags().Lookup("content-type")); err != nil {
		return err
	}

	cmd.PersistentFlags().StringSlice("allowed-extensions", []string{"mp4", "avi"}, "file extensions accepted by uploads")
	if err := viper.BindPFlag("allowed-extensions", cmd.PersistentFlags().Lookup("allowed-extensions")); err != nil {
		return err
	}

	return nil
}

func (c *Media) Set() {
	c.Dir = viper.GetString("media-dir")
	c.ContentType = viper.GetString("content-type")

	c.Extensions = nil
	for _, ext := range viper.GetStringSlice("allowed-extensions") {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			c.Extensions = append(c.Extensions, strings.ToLower(ext))
		}
	}
}
