package chains

import (
	"strings"

	"github.com/sip-protocol/sip-go/types"
)

// Profile selects how aggressively fees are bid.
type Profile string

const (
	ProfileEconomy  Profile = "economy"  // lowest fees
	ProfileStandard Profile = "standard" // balanced
	ProfileFast     Profile = "fast"     // higher fees
	ProfileUrgent   Profile = "urgent"   // maximum priority
)

const (
	solanaDefaultCU          uint32 = 200_000
	solanaMaxCU              uint32 = 1_400_000
	solanaDefaultPriorityFee uint64 = 1_000

	evmBaseGasPrice uint64 = 30_000_000_000 // 30 gwei
	oneGwei         uint64 = 1_000_000_000
)

var profileMultipliers = map[Profile]float64{
	ProfileEconomy:  0.5,
	ProfileStandard: 1.0,
	ProfileFast:     2.0,
	ProfileUrgent:   5.0,
}

var evmProfileMultipliers = map[Profile]float64{
	ProfileEconomy:  0.8,
	ProfileStandard: 1.0,
	ProfileFast:     1.5,
	ProfileUrgent:   2.5,
}

// SolanaComputeBudget is a Solana compute budget configuration.
type SolanaComputeBudget struct {
	Units                    uint32
	MicrolamportsPerCU       uint64
	TotalPriorityFeeLamports uint64
}

// EVMGasConfig is an EVM gas configuration.
type EVMGasConfig struct {
	GasLimit             uint64
	MaxFeePerGas         uint64 // wei
	MaxPriorityFeePerGas uint64 // wei
}

// OptimizationResult is the unified per-chain optimization output.
type OptimizationResult struct {
	Chain           types.ChainID
	Family          Family
	Solana          *SolanaComputeBudget
	EVM             *EVMGasConfig
	Recommendations []string
}

// SolanaBudget computes a compute budget for an estimated CU cost. A nil
// medianFee falls back to the network default priority fee.
func SolanaBudget(estimatedCU uint32, profile Profile, medianFee *uint64) SolanaComputeBudget {
	units := uint32(float64(estimatedCU) * 1.2)
	if units > solanaMaxCU {
		units = solanaMaxCU
	}

	multiplier, ok := profileMultipliers[profile]
	if !ok {
		multiplier = profileMultipliers[ProfileStandard]
	}

	baseFee := solanaDefaultPriorityFee
	if medianFee != nil {
		baseFee = *medianFee
	}

	microlamportsPerCU := uint64(float64(baseFee) * multiplier)
	if microlamportsPerCU < 100 {
		microlamportsPerCU = 100
	}

	return SolanaComputeBudget{
		Units:                    units,
		MicrolamportsPerCU:       microlamportsPerCU,
		TotalPriorityFeeLamports: (uint64(units) * microlamportsPerCU) / 1_000_000,
	}
}

// EstimateSolanaPrivacyCU estimates compute units for a Solana stealth
// payment with the given transfer count.
func EstimateSolanaPrivacyCU(transferCount int, createsATAs, includesMemo bool) uint32 {
	cu := uint32(5_000) // base overhead
	cu += 300           // compute budget instructions

	perTransfer := uint32(10_000)
	if createsATAs {
		perTransfer = 35_000
	}
	cu += perTransfer * uint32(transferCount)

	if includesMemo {
		cu += 500
	}

	cu += 2_000 // key derivation

	return cu
}

// EVMGas computes an EVM gas configuration for an estimated gas cost. A nil
// baseFee falls back to a 30 gwei base.
func EVMGas(estimatedGas uint64, profile Profile, baseFee *uint64) EVMGasConfig {
	base := evmBaseGasPrice
	if baseFee != nil {
		base = *baseFee
	}

	multiplier, ok := evmProfileMultipliers[profile]
	if !ok {
		multiplier = evmProfileMultipliers[ProfileStandard]
	}

	maxPriorityFeePerGas := uint64(float64(2*oneGwei) * multiplier)

	return EVMGasConfig{
		GasLimit:             uint64(float64(estimatedGas) * 1.2),
		MaxFeePerGas:         base*2 + maxPriorityFeePerGas,
		MaxPriorityFeePerGas: maxPriorityFeePerGas,
	}
}

// EstimateEVMPrivacyGas estimates gas for an EVM stealth payment.
func EstimateEVMPrivacyGas(transferCount int, includesApproval, includesAnnouncement bool) uint64 {
	gas := uint64(21_000) // base tx
	gas += 65_000 * uint64(transferCount)
	if includesApproval {
		gas += 46_000
	}
	if includesAnnouncement {
		gas += 80_000
	}
	return gas
}

var complexityCU = map[string]uint32{
	"simple":  50_000,
	"medium":  150_000,
	"complex": 300_000,
}

var complexityGas = map[string]uint64{
	"simple":  50_000,
	"medium":  150_000,
	"complex": 500_000,
}

// SelectOptimalConfig picks a fee/compute configuration for a chain given a
// profile and a complexity class ("simple", "medium", "complex").
func SelectOptimalConfig(chain types.ChainID, profile Profile, complexity string) OptimizationResult {
	characteristics := CharacteristicsOf(chain)
	result := OptimizationResult{Chain: chain, Family: characteristics.Family}

	switch characteristics.Family {
	case FamilySolana:
		estimatedCU, ok := complexityCU[complexity]
		if !ok {
			estimatedCU = complexityCU["medium"]
		}
		budget := SolanaBudget(estimatedCU, profile, nil)
		result.Solana = &budget
		result.Recommendations = append(result.Recommendations,
			"Solana: Use versioned transactions for complex operations")
		if characteristics.CostTier == 1 {
			result.Recommendations = append(result.Recommendations,
				"Solana: Very low cost - prioritize speed over savings")
		}

	case FamilyEVM:
		estimatedGas, ok := complexityGas[complexity]
		if !ok {
			estimatedGas = complexityGas["medium"]
		}
		config := EVMGas(estimatedGas, profile, nil)
		result.EVM = &config
		if characteristics.IsL2 {
			result.Recommendations = append(result.Recommendations,
				"L2: Lower fees, optimize calldata for L1 data costs")
		}
		if strings.EqualFold(chain, "bsc") {
			result.Recommendations = append(result.Recommendations,
				"BSC: Very low gas costs - use standard profile")
		}

	default:
		result.Recommendations = append(result.Recommendations,
			"Chain "+chain+" not fully optimized yet")
	}

	if characteristics.CostTier >= 4 {
		result.Recommendations = append(result.Recommendations,
			"High cost chain - consider L2 alternatives")
	}

	return result
}
