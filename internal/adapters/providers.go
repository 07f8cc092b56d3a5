package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/minion/internal/adapters/abi"
	"github.com/trebuchet-org/minion/internal/adapters/fs"
	"github.com/trebuchet-org/minion/internal/adapters/interactive"
	"github.com/trebuchet-org/minion/internal/adapters/localdb"
	"github.com/trebuchet-org/minion/internal/adapters/substrate"
	"github.com/trebuchet-org/minion/internal/domain/config"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// ProvideWorldStore picks the world store backend named in the runtime config
func ProvideWorldStore(cfg *config.RuntimeConfig, fsStore *fs.WorldStoreAdapter, dbStore *localdb.WorldStoreAdapter) usecase.WorldStore {
	if cfg.Store == config.StoreLevelDB {
		return dbStore
	}
	return fsStore
}

// StoreSet provides world persistence
var StoreSet = wire.NewSet(
	fs.NewWorldStoreAdapter,
	localdb.NewWorldStoreAdapter,
	ProvideWorldStore,
)

// ConfigSet provides the local config file store
var ConfigSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
)

// SubstrateSet provides the simulated chain and clock
var SubstrateSet = wire.NewSet(
	substrate.NewSimulatedAdapter,
	wire.Bind(new(usecase.Runtime), new(*substrate.SimulatedAdapter)),
)

// CodecSet provides ABI call encoding
var CodecSet = wire.NewSet(
	abi.NewCallCodecAdapter,
	wire.Bind(new(usecase.CallCodec), new(*abi.CallCodecAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ProposalSelector), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	StoreSet,
	ConfigSet,
	SubstrateSet,
	CodecSet,
	InteractiveSet,
)
