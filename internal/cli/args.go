package cli

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/minion/internal/app"
	"github.com/trebuchet-org/minion/internal/cli/render"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

// parseAddress accepts a 0x-prefixed hex address; empty yields the zero address
func parseAddress(field, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, domain.Errorf(domain.ErrInvalidAddress, "%s %q", field, s)
	}
	return common.HexToAddress(s), nil
}

// requireAddress is parseAddress rejecting the empty string
func requireAddress(field, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, domain.Errorf(domain.ErrZeroAddress, "%s is required", field)
	}
	return parseAddress(field, s)
}

// caller resolves --from
func caller(a *app.App) (common.Address, error) {
	if a.Config.From == "" {
		return common.Address{}, domain.Errorf(domain.ErrZeroAddress, "--from (or MINION_FROM) is required")
	}
	return parseAddress("--from", a.Config.From)
}

// parseAmount parses a base-unit integer amount
func parseAmount(field, s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 0)
	if !ok || v.Sign() < 0 {
		return nil, domain.Errorf(domain.ErrInvalidAmount, "%s %q", field, s)
	}
	return v, nil
}

func parseProposalID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, domain.Errorf(domain.ErrInvalidInput, "proposal id %q", s)
	}
	return id, nil
}

func parseChoice(s string) (models.VoteChoice, error) {
	switch s {
	case "yes", "y", "1":
		return models.VoteYes, nil
	case "no", "n", "2":
		return models.VoteNo, nil
	}
	return models.VoteNull, domain.Errorf(domain.ErrInvalidChoice, "got %q", s)
}

func parseCalldata(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	data, err := hexutil.Decode(s)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "calldata: %v", err)
	}
	return data, nil
}

// output writes v in the configured structured format, or calls human
func output(cmd *cobra.Command, a *app.App, v any, human func() error) error {
	if render.IsStructured(a.Config.Format) {
		return render.RenderStructured(cmd.OutOrStdout(), a.Config.Format, v)
	}
	return human()
}

func wrap(action string, err error) error {
	return fmt.Errorf("failed to %s: %w", action, err)
}
