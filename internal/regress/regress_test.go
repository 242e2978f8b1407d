package regress_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/primeoasis/oasis/internal/model"
	"github.com/primeoasis/oasis/internal/regress"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDefault(t *testing.T) {
	t.Parallel()
	scenarios, err := regress.Default()
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	outcomes := regress.Runner{Jobs: 2}.Run(t.Context(), scenarios)
	require.Len(t, outcomes, len(scenarios))
	for i, o := range outcomes {
		require.Equal(t, scenarios[i], o.Scenario)
		if o.Scenario.Long {
			require.Equal(t, regress.Skipped, o.Status)
			continue
		}
		require.Equal(t, regress.Passed, o.Status, "%d %s: got %q err %v", o.Scenario.Number, o.Scenario.Name, o.Got, o.Err)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	var testCases = []struct {
		scenario string
		given    regress.Scenario
		then     regress.Status
		missing  string
	}{
		{
			"pass",
			regress.Scenario{Name: "ok", Args: []string{"desert", "d6"}, Expect: []string{"d6*1-1 = 59", "{ oases d6 x1 1: try=2"}},
			regress.Passed,
			"",
		},
		{
			"hit lines with gaps",
			regress.Scenario{Name: "gaps", Args: []string{"range", "3", "5", "3"}, Expect: []string{"oasis primes = 13", "oasis primes = 43", "(try=18"}},
			regress.Passed,
			"",
		},
		{
			"wrong summary",
			regress.Scenario{Name: "bad", Args: []string{"range", "3", "5", "3"}, Expect: []string{"(try=19"}},
			regress.Failed,
			"(try=19",
		},
		{
			"wrong hit value",
			regress.Scenario{Name: "hit", Args: []string{"range", "3", "5", "3"}, Expect: []string{"oasis prime  = 999", "(try=18"}},
			regress.Failed,
			"oasis prime  = 999",
		},
		{
			"missing twin marker",
			regress.Scenario{Name: "twin", Args: []string{"range", "3", "5", "3"}, Expect: []string{"oasis prime  = 13"}},
			regress.Failed,
			"oasis prime  = 13",
		},
		{
			"out of order",
			regress.Scenario{Name: "order", Args: []string{"desert", "d6"}, Expect: []string{"d6*1+1 = 61", "d6*1-1 = 59"}},
			regress.Failed,
			"d6*1-1 = 59",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.scenario, func(t *testing.T) {
			t.Parallel()
			outcomes := regress.Runner{Jobs: 1}.Run(t.Context(), []regress.Scenario{tt.given})
			require.Len(t, outcomes, 1)
			require.Equal(t, tt.then, outcomes[0].Status)
			require.Equal(t, tt.missing, outcomes[0].Missing)
		})
	}
}

func TestRunConfigError(t *testing.T) {
	t.Parallel()
	outcomes := regress.Runner{}.Run(t.Context(), []regress.Scenario{
		{Name: "args", Args: []string{"desert", "6"}, Expect: []string{"{"}},
	})
	var cfgErr *model.ConfigError
	require.ErrorAs(t, outcomes[0].Err, &cfgErr)
	require.Equal(t, model.CodeDesertSinglePrefix, cfgErr.Code)
}

func TestRunInterrupted(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	outcomes := regress.Runner{Long: true}.Run(ctx, []regress.Scenario{
		{Name: "cancelled", Args: []string{"range", "701", "683"}, Expect: []string{"(try=968782"}, Long: true},
	})
	require.Equal(t, regress.Interrupted, outcomes[0].Status)
	require.ErrorIs(t, outcomes[0].Err, model.ErrInterrupted)
	require.Equal(t, "(try=0, hit=0, twin=0)", outcomes[0].Got)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	scenarios, err := regress.Load(strings.NewReader(`
- name: one
  args: [desert, d6]
  expect: ["d6*1-1 = 59", "{ oases"]
- number: 7
  name: two
  args: [range, "3", "2"]
  expect: ["(try="]
  long: true
`))
	require.NoError(t, err)
	require.Equal(t, []regress.Scenario{
		{Number: 1, Name: "one", Args: []string{"desert", "d6"}, Expect: []string{"d6*1-1 = 59", "{ oases"}},
		{Number: 7, Name: "two", Args: []string{"range", "3", "2"}, Expect: []string{"(try="}, Long: true},
	}, scenarios)

	var testCases = []struct {
		scenario string
		given    string
	}{
		{"unknown field", "- name: x\n  args: [desert, d6]\n  expect: [y]\n  color: red\n"},
		{"no args", "- name: x\n  expect: [y]\n"},
		{"empty line", "- name: x\n  args: [desert, d6]\n  expect: [y, \"\"]\n"},
		{"expect not a list", "- name: x\n  args: [desert, d6]\n  expect: {a: b}\n"},
		{"no expect", "- name: x\n  args: [desert, d6]\n"},
		{"not a list", "name: x\n"},
	}
	for _, tt := range testCases {
		t.Run(tt.scenario, func(t *testing.T) {
			_, err := regress.Load(strings.NewReader(tt.given))
			require.Error(t, err)
		})
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()
	outcomes := []regress.Outcome{
		{Scenario: regress.Scenario{Number: 1, Name: "a", Expect: []string{"(try=2"}}, Status: regress.Passed, Got: "(try=2, hit=2, twin=0)"},
		{Scenario: regress.Scenario{Number: 2, Name: "b", Expect: []string{"(try=3"}}, Status: regress.Failed, Got: "(try=4, hit=1, twin=0)", Missing: "(try=3"},
		{Scenario: regress.Scenario{Number: 12, Name: "c", Long: true}, Status: regress.Skipped},
	}

	var out bytes.Buffer
	sum, err := regress.Print(&out, outcomes)
	require.NoError(t, err)
	require.Equal(t, regress.Summary{Passed: 1, Failed: 1, Skipped: 1}, sum)
	require.False(t, sum.OK())
	require.Equal(t, `====< 0001 a
ok (try=2, hit=2, twin=0)
====< 0002 b
FAIL: missing "(try=3", last line "(try=4, hit=1, twin=0)"
====< 0012 c
skip (long)
passed=1 failed=1 skipped=1 interrupted=0
`, out.String())
}
