package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newGetAbiCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "get-abi",
		Short: "Print an account's ABI struct definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			abi, err := client.GetAbi(account)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(abi, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "contract account (required)")
	cmd.MarkFlagRequired("account")
	return cmd
}
