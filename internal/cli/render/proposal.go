package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// ProposalRenderer renders proposals and their lifecycle transitions
type ProposalRenderer struct {
	out   io.Writer
	codec usecase.CallCodec
}

// NewProposalRenderer creates a new proposal renderer. The codec decodes
// action calldata and may be nil.
func NewProposalRenderer(out io.Writer, codec usecase.CallCodec) *ProposalRenderer {
	return &ProposalRenderer{out: out, codec: codec}
}

// RenderTransition renders a one-line confirmation followed by the proposal
func (r *ProposalRenderer) RenderTransition(message string, view *usecase.ProposalView) error {
	fmt.Fprintln(r.out, FormatSuccess(message))
	fmt.Fprintln(r.out)
	return r.RenderProposal(view)
}

// RenderProposal renders one proposal in detail
func (r *ProposalRenderer) RenderProposal(view *usecase.ProposalView) error {
	p := view.Proposal
	fmt.Fprintf(r.out, "%s  %s\n", sectionHeaderStyle.Sprintf("Proposal #%d", p.ID), formatStatus(view.Status))
	if p.Description != "" {
		fmt.Fprintln(r.out, p.Description)
	}
	fmt.Fprintln(r.out)

	rows := [][2]string{
		{"Proposer", formatAddress(p.Proposer)},
		{"Applicant", formatAddress(p.Applicant)},
		{"Sponsor", formatAddress(p.Sponsor)},
		{"Shares requested", strconv.FormatUint(p.SharesRequested, 10)},
		{"Loot requested", strconv.FormatUint(p.LootRequested, 10)},
		{"Tribute", fmt.Sprintf("%s of %s", formatRaw(p.TributeOffered), p.TributeToken.Hex())},
		{"Payment", fmt.Sprintf("%s of %s", formatRaw(p.PaymentRequested), p.PaymentToken.Hex())},
		{"Submitted", formatTime(p.SubmittedAt)},
	}
	if p.Sponsored {
		rows = append(rows,
			[2]string{"Voting", fmt.Sprintf("%s → %s", formatTime(p.VotingStartsAt), formatTime(p.VotingEndsAt))},
			[2]string{"Grace ends", formatTime(p.GracePeriodEndsAt)},
			[2]string{"Tally", fmt.Sprintf("%s / %s of %d shares", yesStyle.Sprintf("%d yes", p.YesVotes), noStyle.Sprintf("%d no", p.NoVotes), p.TotalSharesAtSponsor)},
		)
	}
	if p.Processed {
		rows = append(rows, [2]string{"Processed", fmt.Sprintf("%s by %s", formatTime(p.ProcessedAt), p.Processor.Hex())})
	} else if p.Sponsored && view.Outcome.Reason != "" {
		rows = append(rows, [2]string{"Would fail", view.Outcome.Reason})
	}
	fmt.Fprintln(r.out, keyValue(rows))

	if view.Action != nil {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("Action"))
		fmt.Fprintln(r.out, keyValue(r.actionRows(*view.Action)))
	}

	if len(view.Votes) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("Votes (%d)", len(view.Votes)))
		t := newTable()
		t.AppendHeader(table.Row{"VOTER", "CHOICE", "WEIGHT", "CAST"})
		for _, v := range view.Votes {
			t.AppendRow(table.Row{formatAddress(v.Voter), formatChoice(v.Choice), v.Weight, formatTime(v.CastAt)})
		}
		fmt.Fprintln(r.out, t.Render())
	}
	return nil
}

func (r *ProposalRenderer) actionRows(a models.DelegatedAction) [][2]string {
	call := fmt.Sprintf("%x", []byte(a.Data))
	if r.codec != nil {
		call = r.codec.Describe(a.Data)
	}
	rows := [][2]string{
		{"Status", formatActionStatus(a.Status)},
		{"Target", formatAddress(a.Target)},
		{"Value", formatRaw(a.Value)},
		{"Call", call},
	}
	if a.Status != models.ActionStatusPending {
		rows = append(rows, [2]string{"Executed", formatTime(a.ExecutedAt)})
	}
	if a.Failure != "" {
		rows = append(rows, [2]string{"Failure", noStyle.Sprint(a.Failure)})
	}
	return rows
}

// RenderList renders proposals as a table
func (r *ProposalRenderer) RenderList(result *usecase.ListProposalsResult) error {
	if len(result.Proposals) == 0 {
		fmt.Fprintln(r.out, "No proposals found")
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"ID", "STATUS", "APPLICANT", "SHARES", "TRIBUTE", "YES", "NO", "ACTION", "DESCRIPTION"})
	for _, view := range result.Proposals {
		p := view.Proposal
		action := ""
		if view.Action != nil {
			action = formatActionStatus(view.Action.Status)
		}
		t.AppendRow(table.Row{
			p.ID,
			formatStatus(view.Status),
			formatAddress(p.Applicant),
			p.SharesRequested,
			formatRaw(p.TributeOffered),
			p.YesVotes,
			p.NoVotes,
			action,
			p.Description,
		})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)

	statuses := lo.Keys(result.ByStatus)
	counts := lo.Map(statuses, func(s models.ProposalStatus, _ int) string {
		return fmt.Sprintf("%d %s", result.ByStatus[s], s)
	})
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Clock:"), formatTime(result.Now))
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprint("Total:"), strings.Join(sortedStrings(counts), ", "))
	return nil
}

// RenderVote renders a cast ballot
func (r *ProposalRenderer) RenderVote(result *usecase.SubmitVoteResult) error {
	v := result.Vote
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Voted %s on proposal #%d with weight %d", v.Choice, v.ProposalID, v.Weight)))
	p := result.Proposal.Proposal
	fmt.Fprintf(r.out, "Tally: %s / %s\n", yesStyle.Sprintf("%d yes", p.YesVotes), noStyle.Sprintf("%d no", p.NoVotes))
	return nil
}

// RenderProcess renders a processing outcome
func (r *ProposalRenderer) RenderProcess(result *usecase.ProcessProposalResult) error {
	id := result.Proposal.Proposal.ID
	if result.Outcome.Passed {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Proposal #%d passed", id)))
	} else {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Proposal #%d failed: %s", id, result.Outcome.Reason)))
	}
	fmt.Fprintln(r.out)
	return r.RenderProposal(result.Proposal)
}
