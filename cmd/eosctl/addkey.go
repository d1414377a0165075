package main

import (
	"github.com/spf13/cobra"

	"github.com/eoscore/eosgo"
)

func newAddKeyCmd() *cobra.Command {
	var wif string

	cmd := &cobra.Command{
		Use:   "add-key",
		Short: "Decode a WIF private key and print its EOS public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			keychain := eos.NewKeychain()
			if err := keychain.AddKey("cli@cli", wif); err != nil {
				return err
			}
			pub, err := keychain.PublicKey("cli@cli")
			if err != nil {
				return err
			}
			cmd.Println(pub.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&wif, "wif", "", "WIF-encoded private key (required)")
	cmd.MarkFlagRequired("wif")
	return cmd
}
