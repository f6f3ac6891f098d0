package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Admin struct {
	Login    string
	Password string
}

func (Admin) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().String("admin.login", "", "admin panel login, the panel is locked when empty")
	if err := viper.BindPFlag("admin.login", cmd.PersistentFlags().Lookup("admin.login")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("admin.password", "", "admin panel password")
	if err := viper.BindPFlag("admin.password", cmd.PersistentFlags().Lookup("admin.password")); err != nil {
		return err
	}

	return nil
}

func (c *Admin) Set() {
	c.Login = viper.GetString("admin.login")
	c.Password = viper.GetString("admin.password")
}
