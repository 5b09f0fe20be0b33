package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shahrzads/ml-application-test-master/internal/dto"

	"github.com/spf13/cobra"
)

func summarizeCmd(e *env) *cobra.Command {
	var memberID string

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Score one member, assign an offer and store the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if memberID == "" {
				id, err := promptMemberID(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				memberID = id
			}

			a, err := buildApp(cmd.Context(), e.cfg, e.log)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.offers.SummarizeAndStore(cmd.Context(), memberID)
			if report != nil {
				if printErr := printJSON(cmd.OutOrStdout(), dto.NewReportResponse(report)); printErr != nil && err == nil {
					err = printErr
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&memberID, "member", "m", "", "Member ID (prompted when empty)")
	return cmd
}

func promptMemberID(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Please enter member_id: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read member_id: %w", err)
	}
	id := strings.TrimSpace(line)
	if id == "" {
		return "", fmt.Errorf("member_id is required")
	}
	return id, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
