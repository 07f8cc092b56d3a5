package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// TokenRenderer renders tribute tokens and collectibles
type TokenRenderer struct {
	out io.Writer
}

// NewTokenRenderer creates a new token renderer
func NewTokenRenderer(out io.Writer) *TokenRenderer {
	return &TokenRenderer{out: out}
}

// RenderBalance renders an account's position in a token
func (r *TokenRenderer) RenderBalance(result *usecase.TokenBalanceResult) error {
	t := result.Token
	fmt.Fprintf(r.out, "%s %s\n", sectionHeaderStyle.Sprintf("%s (%s)", t.Name, t.Symbol), formatAddress(t.Address))
	fmt.Fprintln(r.out, keyValue([][2]string{
		{"Account", formatAddress(result.Account)},
		{"Balance", fmt.Sprintf("%s (%s %s)", formatRaw(result.Balance), formatAmount(result.Balance, t.Decimals), t.Symbol)},
		{"Guild allowance", formatRaw(result.GuildAllowance)},
		{"Guild bank", formatRaw(result.GuildBank)},
	}))
	return nil
}

// RenderCollectible renders a deployed collectible
func (r *TokenRenderer) RenderCollectible(c *models.CollectibleState) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Collectible %s (%s) deployed", c.Name, c.Symbol)))
	fmt.Fprintln(r.out, keyValue([][2]string{
		{"Address", formatAddress(c.Address)},
		{"Minion", formatAddress(c.Minion)},
	}))
	return nil
}

// RenderMint renders a direct mint
func (r *TokenRenderer) RenderMint(result *usecase.MintCollectibleResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Minted token #%d to %s", result.TokenID, result.To.Hex())))
	fmt.Fprintf(r.out, "%s %d\n", labelStyle.Sprint("Balance:"), result.Balance)
	return nil
}

// RenderCollectibleBalance renders the ids an owner holds
func (r *TokenRenderer) RenderCollectibleBalance(result *usecase.CollectibleBalanceResult) error {
	c := result.Collectible
	ids := lo.Map(result.TokenIDs, func(id uint64, _ int) string { return fmt.Sprintf("#%d", id) })
	held := "none"
	if len(ids) > 0 {
		held = strings.Join(ids, ", ")
	}
	fmt.Fprintf(r.out, "%s %s\n", sectionHeaderStyle.Sprintf("%s (%s)", c.Name, c.Symbol), formatAddress(c.Address))
	fmt.Fprintln(r.out, keyValue([][2]string{
		{"Owner", formatAddress(result.Owner)},
		{"Balance", fmt.Sprint(result.Balance)},
		{"Tokens", held},
		{"Total supply", fmt.Sprint(c.NextTokenID)},
	}))
	return nil
}
