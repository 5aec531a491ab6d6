package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ciphera/internal/app"
)

var (
	home       string
	passphrase string
	appCtx     *app.App

	relayURL string
	username string
)

func Execute() error {
	root := &cobra.Command{
		Use:   "ciphera",
		Short: "End-to-end encrypted chat CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".ciphera")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			a, err := app.New(app.Config{Home: home, RelayURL: relayURL})
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.ciphera)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to protect keys")
	root.PersistentFlags().StringVar(&relayURL, "relay", "", "relay base URL (e.g. http://127.0.0.1:8080)")

	root.AddCommand(
		initCmd(),
		fingerprintCmd(),
		registerCmd(),
		startSessionCmd(),
		sendCmd(),
		recvCmd(),
	)
	return root.Execute()
}
