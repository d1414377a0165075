package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eoscore/eosgo"
)

func newPushCmd() *cobra.Command {
	var (
		wif           string
		authorization string
		account       string
		actionName    string
		dataJson      string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Sign and push a single action as a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := strings.SplitN(authorization, "@", 2)
			if len(parts) != 2 {
				return fmt.Errorf("malformed authorization %q, want actor@permission", authorization)
			}

			var data map[string]interface{}
			if dataJson != "" {
				if err := json.Unmarshal([]byte(dataJson), &data); err != nil {
					return err
				}
			}

			client := newClient()
			if err := client.AddKey(authorization, wif); err != nil {
				return err
			}

			action := eos.Action{
				Account:       account,
				Name:          actionName,
				Authorization: []eos.PermissionLevel{{Actor: parts[0], Permission: parts[1]}},
				Data:          data,
			}

			result, err := client.PushTransaction([]eos.Action{action}, eos.DefaultExpiration)
			if err != nil {
				return err
			}
			cmd.Println(result.TransactionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&wif, "wif", "", "WIF-encoded private key (required)")
	cmd.Flags().StringVar(&authorization, "authorization", "", "actor@permission (required)")
	cmd.Flags().StringVar(&account, "account", "", "contract account (required)")
	cmd.Flags().StringVar(&actionName, "name", "", "action name (required)")
	cmd.Flags().StringVar(&dataJson, "data", "{}", "action data as a JSON object")
	cmd.MarkFlagRequired("wif")
	cmd.MarkFlagRequired("authorization")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("name")
	return cmd
}
