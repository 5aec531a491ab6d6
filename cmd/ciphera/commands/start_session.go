package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ciphera/internal/domain"
)

// startSessionCmd performs the hybrid PQ X3DH handshake against a peer's prekey bundle and
// persists a new session for future messaging.
func startSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-session <peer>",
		Short: "Establish a secure session with a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if appCtx.Relay == nil {
				return fmt.Errorf("no relay configured. use --relay")
			}
			peer := domain.Username(args[0])
			ctx := context.Background()

			if err := checkCanary(ctx, peer); err != nil {
				return err
			}

			sess, err := appCtx.Sessions.InitiateSession(ctx, passphrase, peer)
			if err != nil {
				return fmt.Errorf("starting session with %q: %w", peer, err)
			}

			fmt.Printf("Session created with %s using pre-key %s\n", peer, sess.PreKeyID)
			return nil
		},
	}
}

// checkCanary compares the peer's relay-published canary against the one
// we last pinned for (relayURL, peer), refusing to proceed on a mismatch
// and pinning it on first contact.
func checkCanary(ctx context.Context, peer domain.Username) error {
	remote, err := appCtx.Relay.FetchAccountCanary(ctx, peer)
	if err != nil {
		return fmt.Errorf("fetching canary for %q: %w", peer, err)
	}

	stored, ok, err := appCtx.Accounts.LoadAccountProfile(appCtx.RelayURL, peer)
	if err != nil {
		return fmt.Errorf("loading pinned account for %q: %w", peer, err)
	}
	if !ok {
		return appCtx.Accounts.SaveAccountProfile(domain.AccountProfile{
			ServerURL: appCtx.RelayURL,
			Username:  peer,
			Canary:    remote,
		})
	}
	if stored.Canary != remote {
		return fmt.Errorf(
			"canary mismatch for %q: pinned %s, relay reports %s (peer may have rotated keys or the relay is compromised)",
			peer, stored.Canary, remote,
		)
	}
	return nil
}
