package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// ActionRenderer renders the minion's delegated actions
type ActionRenderer struct {
	out   io.Writer
	codec usecase.CallCodec
}

// NewActionRenderer creates a new action renderer
func NewActionRenderer(out io.Writer, codec usecase.CallCodec) *ActionRenderer {
	return &ActionRenderer{out: out, codec: codec}
}

// RenderList renders actions as a table
func (r *ActionRenderer) RenderList(actions []usecase.ActionView) error {
	if len(actions) == 0 {
		fmt.Fprintln(r.out, "No actions queued")
		return nil
	}
	t := newTable()
	t.AppendHeader(table.Row{"PROPOSAL", "PROPOSAL STATUS", "ACTION", "TARGET", "CALL", "DESCRIPTION"})
	for _, v := range actions {
		t.AppendRow(table.Row{
			v.Action.ProposalID,
			formatStatus(v.ProposalStatus),
			formatActionStatus(v.Action.Status),
			formatAddress(v.Action.Target),
			v.Call,
			v.Action.Description,
		})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderExecution renders the result of executing an action. A failed call
// is rendered as a warning; the caller still reports the error.
func (r *ActionRenderer) RenderExecution(action *models.DelegatedAction) error {
	if action.Status == models.ActionStatusFailed {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Action for proposal #%d failed and cannot be retried", action.ProposalID)))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Action for proposal #%d executed", action.ProposalID)))
	}
	rows := [][2]string{
		{"Target", formatAddress(action.Target)},
		{"Call", r.codec.Describe(action.Data)},
		{"Executed", formatTime(action.ExecutedAt)},
	}
	if len(action.ReturnData) > 0 {
		rows = append(rows, [2]string{"Returned", action.ReturnData.String()})
	}
	if action.Failure != "" {
		rows = append(rows, [2]string{"Failure", noStyle.Sprint(action.Failure)})
	}
	fmt.Fprintln(r.out, keyValue(rows))
	return nil
}
