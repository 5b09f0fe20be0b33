package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shahrzads/ml-application-test-master/internal/dto"
	"github.com/shahrzads/ml-application-test-master/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptMemberID(t *testing.T) {
	var out bytes.Buffer
	id, err := promptMemberID(strings.NewReader("  5D72524D \n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "5D72524D", id)
	assert.Equal(t, "Please enter member_id: ", out.String())

	id, err = promptMemberID(strings.NewReader("ABC"), &out)
	require.NoError(t, err)
	assert.Equal(t, "ABC", id)

	_, err = promptMemberID(strings.NewReader("\n"), &out)
	assert.ErrorContains(t, err, "member_id is required")
}

// summarizeEnv points the CLI at a temporary CSV and a fake scoring server
// and returns the CSV directory.
func summarizeEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	csvPath := filepath.Join(dir, "member_data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"memberId,lastTransatcionUtcTs,lastTransactionType,lastTransactionPointsBought,lastTransactionRevenueUSD\n"+
			"A,2024-01-01 00:00:00,buy,100,10\n"+
			"A,2024-01-02 00:00:00,gift,200,20\n",
	), 0o644))

	r := chi.NewRouter()
	r.Post(service.PathPredictATS, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prediction": 812.5}`))
	})
	r.Post(service.PathPredictResp, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prediction": 0.42}`))
	})
	r.Post(service.PathAssignOffer, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"offer": "OFFER_B"}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	t.Setenv("SOURCE_KIND", "csv")
	t.Setenv("SOURCE_CSV_PATH", csvPath)
	t.Setenv("REPORT_SINK", "xlsx")
	t.Setenv("SCORING_BASE_URL", srv.URL)
	t.Setenv("NATS_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func TestSummarizeCommand(t *testing.T) {
	dir := summarizeEnv(t)
	xlsxPath := filepath.Join(dir, "reports.xlsx")
	t.Setenv("REPORT_XLSX_PATH", xlsxPath)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader("A\n"))
	root.SetArgs([]string{"summarize"})
	require.NoError(t, root.Execute())

	printed := out.String()
	require.True(t, strings.HasPrefix(printed, "Please enter member_id: "))

	var report dto.ReportResponse
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(printed, "Please enter member_id: ")), &report))
	assert.Equal(t, "A", report.MemberID)
	assert.Equal(t, 150.0, report.Features.AvgPointsBought)
	require.NotNil(t, report.Offer)
	assert.Equal(t, "OFFER_B", *report.Offer)

	assert.FileExists(t, xlsxPath)
}

func TestSummarizeCommand_SinkFailureStillPrintsReport(t *testing.T) {
	dir := summarizeEnv(t)
	t.Setenv("REPORT_XLSX_PATH", filepath.Join(dir, "missing-dir", "reports.xlsx"))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"summarize", "--member", "A"})

	err := root.Execute()
	require.ErrorContains(t, err, "failed to save report for member A")

	var report dto.ReportResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "A", report.MemberID)
	require.NotNil(t, report.Offer)
	assert.Equal(t, "OFFER_B", *report.Offer)
}
