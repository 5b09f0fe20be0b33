package main

import (
	"github.com/shahrzads/ml-application-test-master/internal/dto"

	"github.com/spf13/cobra"
)

func featuresCmd(e *env) *cobra.Command {
	var memberID string

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print the derived features of one member",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), e.cfg, e.log)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.offers.Features(cmd.Context(), memberID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.NewFeaturesResponse(result.MemberID, result.Features, result.Timings, result.ReadLatency))
		},
	}

	cmd.Flags().StringVarP(&memberID, "member", "m", "", "Member ID")
	_ = cmd.MarkFlagRequired("member")
	return cmd
}
