package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, workbook string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--workbook", workbook}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_InitCheckAndRows(t *testing.T) {
	book := filepath.Join(t.TempDir(), "data", "proposal_management.xlsx")

	out, err := run(t, book, "init", "--format", "json")
	require.NoError(t, err)
	var res struct {
		Created bool     `json:"created"`
		Sheets  []string `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Created)
	assert.Len(t, res.Sheets, 6)

	out, err = run(t, book, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Cost")
	assert.Contains(t, out, "A1:E11")

	out, err = run(t, book, "append", "Cost", "ITEM-011", "Printer", "45000", "Equipment", "2024-03-01", "-f", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"row":11}`, out)

	out, err = run(t, book, "find", "Cost", "itemid", "ITEM-011", "-f", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"row":11}`, out)

	out, err = run(t, book, "rows", "Cost", "--records", "-f", "json")
	require.NoError(t, err)
	var recs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 11)
	assert.Equal(t, float64(45000), recs[10]["unitcost"])
	assert.Equal(t, "2024-03-01T00:00:00Z", recs[10]["created_date"])
}

func TestCLI_BudgetFlow(t *testing.T) {
	book := filepath.Join(t.TempDir(), "book.xlsx")
	_, err := run(t, book, "init")
	require.NoError(t, err)

	out, err := run(t, book, "proposal", "add", "--title", "School feeding", "--ip-id", "partner1", "-f", "json")
	require.NoError(t, err)
	var p struct {
		ID     string `json:"proposal_id"`
		Status string `json:"proposal_status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.True(t, strings.HasPrefix(p.ID, "PROP-"))
	assert.Equal(t, "pending", p.Status)

	_, err = run(t, book, "budget", "add", p.ID, "ITEM-004", "--ip-id", "partner1", "-q", "4")
	require.NoError(t, err)

	out, err = run(t, book, "budget", "total", p.ID, "-f", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"proposal_id":"`+p.ID+`","total":"90000"}`, out)
}

func TestCLI_Errors(t *testing.T) {
	book := filepath.Join(t.TempDir(), "missing.xlsx")

	_, err := run(t, book, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "propbook init")

	_, err = run(t, book, "rows", "Cost", "--format", "xml")
	assert.Error(t, err)

	_, err = run(t, book, "reset")
	assert.Error(t, err)

	_, err = run(t, book, "delete", "Cost", "two")
	assert.Error(t, err)
}
