/*
Copyright © 2021 Edmond Cotterell

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"
	"path/filepath"

	"github.com/Daskott/folio/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func createServerCmd() *cobra.Command {
	var serverConfigFile string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start a folio server",
		Long:  `The folio server renders the portfolio site and handles contact form submissions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := serverConfig(serverConfigFile)
			if err != nil {
				return err
			}

			server.Start(config, isDevEnv)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverConfigFile, "sconfig", "", "config for server (default is dev/config/server.yml in dev mode)")

	return cmd
}

func serverConfig(configFile string) (*viper.Viper, error) {
	config := viper.New()

	if configFile == "" && isDevEnv {
		path, err := devConfigFilePath()
		if err != nil {
			return nil, err
		}
		configFile = path
	}

	if configFile == "" {
		return nil, formattedError("--sconfig is required when not in dev mode")
	}

	config.SetConfigFile(configFile)
	config.AutomaticEnv() // read in environment variables that match

	if err := config.ReadInConfig(); err != nil {
		return nil, formattedError("error reading server config file: %v", err)
	}

	return config, nil
}

func devConfigFilePath() (string, error) {
	configDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "dev", "config", "server.yml"), nil
}
