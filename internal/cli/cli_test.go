package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGuildToml = `
period_duration = 1
voting_period_length = 10
grace_period_length = 10
quorum_percentage = 0
dilution_bound = 3
proposal_deposit = "10"
processing_reward = "1"
summoner_shares = 1

[token]
name = "Test Guild Token"
symbol = "TGT"
decimals = 18
`

var (
	summonerAddr = common.HexToAddress("0x1000000000000000000000000000000000000001").Hex()
	aliceAddr    = common.HexToAddress("0x2000000000000000000000000000000000000002").Hex()
	daveAddr     = common.HexToAddress("0x5000000000000000000000000000000000000005").Hex()
)

// minionContext runs commands in-process against a project directory
type minionContext struct {
	t     *testing.T
	store string
}

func newMinionContext(t *testing.T, store string) *minionContext {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guild.toml"), []byte(testGuildToml), 0644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return &minionContext{t: t, store: store}
}

// minion runs one command with --non-interactive and the context's store
func (tc *minionContext) minion(args ...string) (string, error) {
	tc.t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--non-interactive", "--store", tc.store}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (tc *minionContext) mustMinion(args ...string) string {
	tc.t.Helper()
	out, err := tc.minion(args...)
	require.NoError(tc.t, err, out)
	return out
}

// json runs a command with --format json and decodes its output
func (tc *minionContext) json(args ...string) map[string]any {
	tc.t.Helper()
	out := tc.mustMinion(append(args, "--format", "json")...)
	var v map[string]any
	require.NoError(tc.t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func (tc *minionContext) pass(id string, voters ...string) string {
	tc.t.Helper()
	tc.mustMinion("proposal", "sponsor", id, "--from", summonerAddr)
	for _, voter := range voters {
		tc.mustMinion("proposal", "vote", id, "yes", "--from", voter)
	}
	tc.mustMinion("time", "advance", "--to", id)
	return tc.mustMinion("proposal", "process", id, "--from", summonerAddr)
}

func TestGuildWorkflow(t *testing.T) {
	for _, store := range []string{"fs", "leveldb"} {
		t.Run(store, func(t *testing.T) {
			tc := newMinionContext(t, store)

			summoned := tc.json("summon", "--from", summonerAddr)
			token := summoned["DeployedToken"].(map[string]any)
			assert.Equal(t, "TGT", token["symbol"])

			_, err := tc.minion("summon", "--from", aliceAddr)
			assert.ErrorContains(t, err, "guild already summoned")

			for _, addr := range []string{summonerAddr, aliceAddr} {
				tc.mustMinion("token", "fund", addr, "1000")
				tc.mustMinion("token", "approve", "1000", "--from", addr)
			}

			out := tc.mustMinion("proposal", "submit", "--from", aliceAddr, "--shares", "5", "--tribute", "100", "-d", "alice joins")
			assert.Contains(t, out, "Proposal #0 submitted")

			_, err = tc.minion("proposal", "process", "0", "--from", summonerAddr)
			assert.ErrorContains(t, err, "proposal not sponsored")

			out = tc.pass("0", summonerAddr)
			assert.Contains(t, out, "Proposal #0 passed")

			out = tc.mustMinion("member", "list")
			assert.Contains(t, out, aliceAddr)

			nft := tc.json("nft", "deploy", "--from", summonerAddr)
			nftAddr := nft["address"].(string)
			assert.Equal(t, summoned["Minion"], nft["minion"])

			_, err = tc.minion("nft", "mint", nftAddr, daveAddr, "--from", daveAddr)
			assert.ErrorContains(t, err, "caller is not the minion")

			out = tc.mustMinion("action", "propose", nftAddr, daveAddr, "--sig", "mint(address)", "-d", "badge for dave", "--from", aliceAddr)
			assert.Contains(t, out, "Action queued as proposal #1")

			out = tc.pass("1", summonerAddr, aliceAddr)
			assert.Contains(t, out, "Proposal #1 passed")

			out = tc.mustMinion("action", "execute", "1", "--from", aliceAddr)
			assert.Contains(t, out, "Action for proposal #1 executed")

			balance := tc.json("nft", "balance", nftAddr, daveAddr)
			assert.Equal(t, float64(1), balance["Balance"])

			_, err = tc.minion("action", "execute", "1", "--from", aliceAddr)
			assert.ErrorContains(t, err, "action already executed")

			out = tc.mustMinion("action", "list")
			assert.Contains(t, out, "badge for dave")

			out = tc.mustMinion("proposal", "list", "--format", "yaml")
			assert.Contains(t, out, "description: alice joins")
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tc := newMinionContext(t, "fs")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no guild yet", []string{"member", "list"}, "guild not summoned"},
		{"missing caller", []string{"summon"}, "--from"},
		{"bad address", []string{"summon", "--from", "0x123"}, "invalid address"},
		{"bad proposal id", []string{"proposal", "sponsor", "abc", "--from", summonerAddr}, "proposal id"},
		{"bad vote", []string{"proposal", "vote", "0", "maybe", "--from", summonerAddr}, "vote must be yes or no"},
		{"bad status", []string{"proposal", "list", "--status", "pending"}, "unknown status"},
		{"bad format", []string{"member", "list", "--format", "xml"}, "unsupported output format"},
		{"time needs a target", []string{"time", "advance"}, "give a duration or --to"},
		{"args without signature", []string{"action", "propose", daveAddr, daveAddr, "--from", summonerAddr}, "need --sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tc.minion(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "minion version dev")
}

func TestConfigCmd(t *testing.T) {
	tc := newMinionContext(t, "fs")

	out := tc.mustMinion("config")
	assert.Contains(t, out, "No .minion/config.local.json file found")

	_, err := tc.minion("config", "remove", "from")
	assert.ErrorContains(t, err, "no config file")

	tc.mustMinion("config", "set", "from", summonerAddr)
	cfg := tc.json("config")
	assert.Equal(t, summonerAddr, cfg["from"])

	// summon picks the caller up from the local config
	summoned := tc.json("summon")
	assert.Equal(t, summonerAddr, summoned["Summoner"])

	_, err = tc.minion("config", "set", "store", "postgres")
	assert.ErrorContains(t, err, "store must be fs or leveldb")

	_, err = tc.minion("config", "set", "colour", "red")
	assert.ErrorContains(t, err, "unknown config key")

	out = tc.mustMinion("config", "remove", "from")
	assert.Contains(t, out, "Removed from")
	cfg = tc.json("config")
	assert.NotContains(t, cfg, "from")
}
