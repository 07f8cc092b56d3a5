package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// GuildRenderer renders guild lifecycle results
type GuildRenderer struct {
	out io.Writer
}

// NewGuildRenderer creates a new guild renderer
func NewGuildRenderer(out io.Writer) *GuildRenderer {
	return &GuildRenderer{out: out}
}

// RenderSummon renders a freshly summoned guild
func (r *GuildRenderer) RenderSummon(result *usecase.SummonGuildResult) error {
	fmt.Fprintln(r.out, FormatSuccess("Guild summoned"))
	fmt.Fprintln(r.out)
	rows := [][2]string{
		{"Guild", formatAddress(result.Guild)},
		{"Minion", formatAddress(result.Minion)},
		{"Summoner", fmt.Sprintf("%s (%d shares)", formatAddress(result.Summoner), result.SummonerShares)},
	}
	if result.DeployedToken != nil {
		rows = append(rows, [2]string{"Tribute token", fmt.Sprintf("%s %s", formatAddress(result.DeployedToken.Address), result.DeployedToken.Symbol)})
	}
	fmt.Fprintln(r.out, keyValue(rows))
	fmt.Fprintln(r.out)
	r.renderParams(result.Params)
	return nil
}

func (r *GuildRenderer) renderParams(p models.GuildParams) {
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("Parameters"))
	rows := [][2]string{
		{"Voting period", p.VotingPeriod.String()},
		{"Grace period", p.GracePeriod.String()},
		{"Quorum", fmt.Sprintf("%d%%", p.QuorumPercentage)},
		{"Dilution bound", strconv.FormatUint(p.DilutionBound, 10)},
		{"Proposal deposit", formatRaw(p.ProposalDeposit)},
		{"Processing reward", formatRaw(p.ProcessingReward)},
	}
	for i, token := range p.ApprovedTokens {
		label := ""
		if i == 0 {
			label = "Approved tokens"
		}
		rows = append(rows, [2]string{label, formatAddress(token)})
	}
	fmt.Fprintln(r.out, keyValue(rows))
}

// RenderOverview renders the members table and the bank
func (r *GuildRenderer) RenderOverview(o *usecase.GuildOverview) error {
	fmt.Fprintln(r.out, keyValue([][2]string{
		{"Guild", formatAddress(o.Guild)},
		{"Minion", formatAddress(o.Minion)},
		{"Summoner", formatAddress(o.Summoner)},
		{"Queue", fmt.Sprintf("%v", o.Queue)},
	}))
	fmt.Fprintln(r.out)

	active := lo.Filter(o.Members, func(m models.Member, _ int) bool { return m.Shares > 0 || m.Loot > 0 })
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("Members (%d)", len(active)))
	t := newTable()
	t.AppendHeader(table.Row{"ADDRESS", "SHARES", "LOOT", "JOINED", "HIGHEST YES"})
	for _, m := range active {
		highest := "-"
		if m.HighestYesVote != nil {
			highest = fmt.Sprintf("#%d", *m.HighestYesVote)
		}
		t.AppendRow(table.Row{formatAddress(m.Address), m.Shares, m.Loot, formatTime(m.JoinedAt), highest})
	}
	t.AppendFooter(table.Row{"TOTAL", o.TotalShares, o.TotalLoot, "", ""})
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("Bank"))
	tokens := lo.Keys(o.Bank)
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Cmp(tokens[j]) < 0 })
	rows := make([][2]string, 0, len(tokens))
	for _, token := range tokens {
		rows = append(rows, [2]string{token.Hex(), formatRaw(o.Bank[token])})
	}
	fmt.Fprintln(r.out, keyValue(rows))
	return nil
}

// RenderRagequit renders the payout of a ragequit
func (r *GuildRenderer) RenderRagequit(result *usecase.RagequitResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Ragequit %s", result.Member.Address.Hex())))
	rows := make([][2]string, 0, len(result.Withdrawals)+2)
	for _, w := range result.Withdrawals {
		rows = append(rows, [2]string{"Withdrew", fmt.Sprintf("%s of %s", formatRaw(w.Amount), w.Token.Hex())})
	}
	rows = append(rows,
		[2]string{"Shares left", strconv.FormatUint(result.Member.Shares, 10)},
		[2]string{"Loot left", strconv.FormatUint(result.Member.Loot, 10)},
	)
	fmt.Fprintln(r.out, keyValue(rows))
	return nil
}

// RenderReset renders what a reset dropped
func (r *GuildRenderer) RenderReset(result *usecase.ResetWorldResult) error {
	if !result.HadGuild && result.Tokens == 0 && result.Collectibles == 0 {
		fmt.Fprintln(r.out, "Nothing to reset")
		return nil
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("World reset: dropped %d proposals, %d tokens and %d collectibles",
		result.Proposals, result.Tokens, result.Collectibles)))
	return nil
}

// RenderClock renders the world clock
func (r *GuildRenderer) RenderClock(result *usecase.ClockResult) error {
	fmt.Fprintln(r.out, keyValue([][2]string{
		{"Now", formatTime(result.Now)},
		{"Offset", result.Offset.String()},
	}))
	return nil
}
