package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newGetInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-info",
		Short: "Print the node's chain info",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			info, err := client.GetInfo()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}
}
