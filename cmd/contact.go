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
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Daskott/folio/contactform"
	"github.com/Daskott/folio/i18n"
	"github.com/spf13/cobra"
)

const contactTimeout = 30 * time.Second

type contactOptions struct {
	url     string
	name    string
	email   string
	message string
	locale  string
}

func createContactCmd() *cobra.Command {
	opts := contactOptions{}

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through a folio server's contact form",
		Long: `Validates the message the same way the site's contact form does,
then posts it to the server's contact endpoint and prints the outcome.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContact(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "http://localhost:3000", "base url of the folio server")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "your name")
	cmd.Flags().StringVarP(&opts.email, "email", "e", "", "your email address")
	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "the message")
	cmd.Flags().StringVarP(&opts.locale, "locale", "l", i18n.DefaultLocale, "language of the messages, 'en' or 'fr'")

	return cmd
}

func runContact(cmd *cobra.Command, opts contactOptions) error {
	if !i18n.IsSupported(opts.locale) {
		return formattedError("unsupported locale %q, should be one of %v", opts.locale, i18n.SupportedLocales)
	}

	bundle, err := i18n.NewBundle()
	if err != nil {
		return err
	}
	catalog := bundle.Catalog(opts.locale)

	endpoint := strings.TrimRight(opts.url, "/") + "/api/contact"
	form := contactform.New(contactform.NewHTTPSubmitter(endpoint, opts.locale), catalog)
	form.Fill(contactform.Submission{Name: opts.name, Email: opts.email, Message: opts.message})

	ctx, cancel := context.WithTimeout(context.Background(), contactTimeout)
	defer cancel()

	err = form.Submit(ctx)

	var validationErrs contactform.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			cmd.Printf("%s %s\n", yellow(string(fieldErr.Field)+":"), fieldErr.Message)
		}
		return formattedError("message not sent")
	}

	if err != nil {
		cmd.Printf("%s %s\n", warningLabel, form.ErrorText())
		return formattedError("message not sent")
	}

	cmd.Printf("%s %s\n", green(catalog.Text("Contact.successTitle")), catalog.Text("Contact.successText"))
	return nil
}
