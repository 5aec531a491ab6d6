package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ciphera/internal/domain"
)

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [username]",
		Short: "Publish your prekey bundle to the relay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if appCtx.Relay == nil {
				return fmt.Errorf("no relay configured. use --relay")
			}
			username = args[0]

			// Generate a signed pre-key and a small batch of one-time keys.
			if _, err := appCtx.Prekey.GenerateAndStorePreKeys(passphrase, 10); err != nil {
				return err
			}

			// Assemble the public bundle and cache it.
			bundle, err := appCtx.Prekey.LoadPreKeyBundle(passphrase, domain.Username(username))
			if err != nil {
				return err
			}

			// Publish to relay.
			if err := appCtx.Relay.RegisterPreKeyBundle(context.Background(), bundle); err != nil {
				return err
			}

			fmt.Println("Registered prekeys with relay")
			return nil
		},
	}
	return cmd
}
