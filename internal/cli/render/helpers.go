package render

import (
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	addressStyle       = color.New(color.FgWhite)
	timestampStyle     = color.New(color.Faint)
	labelStyle         = color.New(color.Faint)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	yesStyle           = color.New(color.FgGreen)
	noStyle            = color.New(color.FgRed)

	title = cases.Title(language.English)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// statusStyle picks a color per proposal status
func statusStyle(s models.ProposalStatus) *color.Color {
	switch s {
	case models.ProposalStatusPassed:
		return color.New(color.FgGreen, color.Bold)
	case models.ProposalStatusFailed, models.ProposalStatusCancelled:
		return color.New(color.FgRed)
	case models.ProposalStatusVoting:
		return color.New(color.FgCyan, color.Bold)
	case models.ProposalStatusGrace, models.ProposalStatusReady:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Faint)
	}
}

func formatStatus(s models.ProposalStatus) string {
	return statusStyle(s).Sprint(title.String(string(s)))
}

func formatActionStatus(s models.ActionStatus) string {
	switch s {
	case models.ActionStatusExecuted:
		return yesStyle.Sprint(title.String(string(s)))
	case models.ActionStatusFailed:
		return noStyle.Sprint(title.String(string(s)))
	default:
		return color.New(color.FgYellow).Sprint(title.String(string(s)))
	}
}

func formatChoice(c models.VoteChoice) string {
	if c == models.VoteYes {
		return yesStyle.Sprint("yes")
	}
	return noStyle.Sprint(c.String())
}

func formatAddress(addr common.Address) string {
	if addr == (common.Address{}) {
		return labelStyle.Sprint("-")
	}
	return addressStyle.Sprint(addr.Hex())
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return timestampStyle.Sprint("-")
	}
	return timestampStyle.Sprint(t.UTC().Format("2006-01-02 15:04:05"))
}

// formatAmount renders a raw token amount in whole units
func formatAmount(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(amount, scale, new(big.Int))
	if frac.Sign() == 0 {
		return whole.String()
	}
	digits := frac.String()
	digits = strings.Repeat("0", int(decimals)-len(digits)) + digits
	return whole.String() + "." + strings.TrimRight(digits, "0")
}

func formatRaw(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

// newTable returns a borderless table in the CLI's house style
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Box.PaddingRight = "   "
	return t
}

// keyValue renders an aligned label/value block
func keyValue(rows [][2]string) string {
	t := newTable()
	t.Style().Options.SeparateHeader = false
	for _, r := range rows {
		t.AppendRow(table.Row{labelStyle.Sprint(r[0]), r[1]})
	}
	return t.Render()
}

func sortedStrings(s []string) []string {
	sort.Strings(s)
	return s
}
