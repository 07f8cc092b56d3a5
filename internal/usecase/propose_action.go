package usecase

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/minion/internal/domain"
)

// ProposeAction queues a call for the minion behind a guild proposal
type ProposeAction struct {
	sessions *Sessions
	codec    CallCodec
	log      *slog.Logger
}

// NewProposeAction creates a new propose action use case
func NewProposeAction(sessions *Sessions, codec CallCodec, log *slog.Logger) *ProposeAction {
	return &ProposeAction{sessions: sessions, codec: codec, log: log}
}

// ProposeActionParams contains parameters for a delegated call. Either Data
// or Signature with Args describes the calldata.
type ProposeActionParams struct {
	From        common.Address
	Target      common.Address
	Value       *big.Int
	Data        []byte
	Signature   string
	Args        []string
	Description string
}

// Run encodes the call and submits the proposal carrying it
func (uc *ProposeAction) Run(ctx context.Context, params ProposeActionParams) (*ProposalView, error) {
	data := params.Data
	if params.Signature != "" {
		if len(data) > 0 {
			return nil, domain.Errorf(domain.ErrInvalidInput, "pass either calldata or a signature, not both")
		}
		var err error
		if data, err = uc.codec.EncodeCall(params.Signature, params.Args...); err != nil {
			return nil, err
		}
	}

	var view *ProposalView
	err := uc.sessions.Mutate(ctx, "propose-action", func(s *Session) error {
		g, err := s.Guild()
		if err != nil {
			return err
		}
		id, err := g.Minion.ProposeAction(params.From, params.Target, params.Value, data, params.Description)
		if err != nil {
			return err
		}
		view, err = viewProposal(g, s.Clock.Now(), id)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("action proposed", "proposal", view.Proposal.ID, "target", params.Target.Hex(), "call", uc.codec.Describe(data))
	return view, nil
}
