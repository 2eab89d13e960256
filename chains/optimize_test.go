package chains

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolanaBudget(t *testing.T) {
	budget := SolanaBudget(100_000, ProfileStandard, nil)
	require.Equal(t, uint32(120_000), budget.Units, "20% margin")
	require.Equal(t, solanaDefaultPriorityFee, budget.MicrolamportsPerCU)
	require.Equal(t, uint64(120_000)*budget.MicrolamportsPerCU/1_000_000, budget.TotalPriorityFeeLamports)

	// Units clamp at the network maximum.
	huge := SolanaBudget(2_000_000, ProfileStandard, nil)
	require.Equal(t, solanaMaxCU, huge.Units)

	// Profiles scale the fee monotonically.
	economy := SolanaBudget(100_000, ProfileEconomy, nil)
	urgent := SolanaBudget(100_000, ProfileUrgent, nil)
	require.Less(t, economy.MicrolamportsPerCU, urgent.MicrolamportsPerCU)

	// Median fee overrides the default; floor at 100 microlamports.
	median := uint64(50)
	floored := SolanaBudget(100_000, ProfileEconomy, &median)
	require.Equal(t, uint64(100), floored.MicrolamportsPerCU)

	// Unknown profiles fall back to standard.
	fallback := SolanaBudget(100_000, Profile("bogus"), nil)
	require.Equal(t, budget, fallback)
}

func TestEstimateSolanaPrivacyCU(t *testing.T) {
	base := EstimateSolanaPrivacyCU(1, false, false)
	require.Equal(t, uint32(17_300), base)

	withATA := EstimateSolanaPrivacyCU(1, true, false)
	require.Greater(t, withATA, base, "ATA creation costs more")

	withMemo := EstimateSolanaPrivacyCU(1, false, true)
	require.Equal(t, base+500, withMemo)

	two := EstimateSolanaPrivacyCU(2, false, false)
	require.Equal(t, base+10_000, two)
}

func TestEVMGas(t *testing.T) {
	config := EVMGas(100_000, ProfileStandard, nil)
	require.Equal(t, uint64(120_000), config.GasLimit)
	require.Equal(t, uint64(2)*oneGwei, config.MaxPriorityFeePerGas)
	require.Equal(t, evmBaseGasPrice*2+config.MaxPriorityFeePerGas, config.MaxFeePerGas)

	baseFee := uint64(10_000_000_000)
	withBase := EVMGas(100_000, ProfileUrgent, &baseFee)
	require.Equal(t, baseFee*2+withBase.MaxPriorityFeePerGas, withBase.MaxFeePerGas)
	require.Greater(t, withBase.MaxPriorityFeePerGas, config.MaxPriorityFeePerGas)
}

func TestEstimateEVMPrivacyGas(t *testing.T) {
	base := EstimateEVMPrivacyGas(1, false, false)
	require.Equal(t, uint64(86_000), base)
	require.Equal(t, base+46_000, EstimateEVMPrivacyGas(1, true, false))
	require.Equal(t, base+80_000, EstimateEVMPrivacyGas(1, false, true))
	require.Equal(t, base+65_000, EstimateEVMPrivacyGas(2, false, false))
}

func TestSelectOptimalConfig(t *testing.T) {
	solana := SelectOptimalConfig(ChainSolana, ProfileStandard, "medium")
	require.Equal(t, FamilySolana, solana.Family)
	require.NotNil(t, solana.Solana)
	require.Nil(t, solana.EVM)
	require.NotEmpty(t, solana.Recommendations)

	eth := SelectOptimalConfig(ChainEthereum, ProfileStandard, "complex")
	require.Equal(t, FamilyEVM, eth.Family)
	require.NotNil(t, eth.EVM)
	require.Nil(t, eth.Solana)
	require.Contains(t, eth.Recommendations, "High cost chain - consider L2 alternatives")

	l2 := SelectOptimalConfig(ChainArbitrum, ProfileEconomy, "simple")
	require.NotNil(t, l2.EVM)
	require.Contains(t, l2.Recommendations, "L2: Lower fees, optimize calldata for L1 data costs")

	// Unknown complexity falls back to medium.
	fallback := SelectOptimalConfig(ChainEthereum, ProfileStandard, "bogus")
	require.Equal(t, SelectOptimalConfig(ChainEthereum, ProfileStandard, "medium").EVM, fallback.EVM)

	near := SelectOptimalConfig(ChainNear, ProfileStandard, "simple")
	require.Nil(t, near.Solana)
	require.Nil(t, near.EVM)
	require.NotEmpty(t, near.Recommendations)
}
