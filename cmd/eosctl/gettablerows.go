package main

import (
	"github.com/spf13/cobra"

	"github.com/eoscore/eosgo"
)

func newGetTableRowsCmd() *cobra.Command {
	var opts eos.GetTableRowsOpts

	cmd := &cobra.Command{
		Use:   "get-table-rows",
		Short: "Print raw packed rows from a contract table",
		Long: `Prints each row as a hex string. Decoding a row into named fields
requires the table's ABI struct, via eos.UnpackRow; this command only
fetches the raw bytes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			rows, more, err := client.GetTableRows(opts)
			if err != nil {
				return err
			}
			for _, row := range rows {
				cmd.Println(row.String())
			}
			if more {
				cmd.PrintErrln("more rows available; narrow --lower-bound/--limit")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Code, "code", "", "contract account that owns the table (required)")
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "table scope (required)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "table name (required)")
	cmd.Flags().StringVar(&opts.LowerBound, "lower-bound", "", "lower bound key")
	cmd.Flags().StringVar(&opts.UpperBound, "upper-bound", "", "upper bound key")
	cmd.Flags().Uint32Var(&opts.Limit, "limit", 10, "maximum rows to fetch")
	cmd.MarkFlagRequired("code")
	cmd.MarkFlagRequired("scope")
	cmd.MarkFlagRequired("table")
	return cmd
}
