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
	"bufio"
	"strings"

	"github.com/Daskott/folio/server/auth"
	"github.com/spf13/cobra"
)

func createHashPasswordCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a password for 'owner.passwordHash' in the server config",
		Long: `Hashes the password given with --password, or read from the first
line of stdin, with bcrypt.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return formattedError("a password is required")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if strings.TrimSpace(password) == "" {
				return formattedError("a password is required")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			cmd.Println(hash)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password to hash")

	return cmd
}
