// Package chains maps chain identifiers onto the protocol's curve choices
// and carries per-chain characteristics used by fee/compute estimation.
// Everything here is pure table lookup and arithmetic: no RPC, no
// submission.
package chains

import (
	"sort"
	"strings"

	"github.com/sip-protocol/sip-go/core/curves"
	"github.com/sip-protocol/sip-go/types"
)

// Well-known chain identifiers.
const (
	ChainSolana   types.ChainID = "solana"
	ChainEthereum types.ChainID = "ethereum"
	ChainArbitrum types.ChainID = "arbitrum"
	ChainOptimism types.ChainID = "optimism"
	ChainBase     types.ChainID = "base"
	ChainPolygon  types.ChainID = "polygon"
	ChainBSC      types.ChainID = "bsc"
	ChainNear     types.ChainID = "near"
)

// Family is the blockchain family a chain belongs to.
type Family string

const (
	FamilySolana  Family = "solana"
	FamilyEVM     Family = "evm"
	FamilyNear    Family = "near"
	FamilyBitcoin Family = "bitcoin"
	FamilyCosmos  Family = "cosmos"
)

// Characteristics describes a chain's properties for optimization.
type Characteristics struct {
	Family      Family
	BlockTime   float64 // seconds
	HasEIP1559  bool
	IsL2        bool
	CostTier    int // 1 = cheapest, 5 = most expensive
	NativeToken string
}

var registry = map[string]Characteristics{
	"solana":   {Family: FamilySolana, BlockTime: 0.4, CostTier: 1, NativeToken: "SOL"},
	"ethereum": {Family: FamilyEVM, BlockTime: 12.0, HasEIP1559: true, CostTier: 5, NativeToken: "ETH"},
	"arbitrum": {Family: FamilyEVM, BlockTime: 0.25, HasEIP1559: true, IsL2: true, CostTier: 2, NativeToken: "ETH"},
	"optimism": {Family: FamilyEVM, BlockTime: 2.0, HasEIP1559: true, IsL2: true, CostTier: 2, NativeToken: "ETH"},
	"base":     {Family: FamilyEVM, BlockTime: 2.0, HasEIP1559: true, IsL2: true, CostTier: 2, NativeToken: "ETH"},
	"polygon":  {Family: FamilyEVM, BlockTime: 2.0, HasEIP1559: true, IsL2: true, CostTier: 2, NativeToken: "MATIC"},
	"bsc":      {Family: FamilyEVM, BlockTime: 3.0, CostTier: 1, NativeToken: "BNB"},
	"near":     {Family: FamilyNear, BlockTime: 1.0, CostTier: 1, NativeToken: "NEAR"},
}

// FamilyOf detects the family of a chain identifier. Unknown identifiers
// default to the EVM family.
func FamilyOf(chain types.ChainID) Family {
	normalized := strings.ToLower(chain)
	switch {
	case strings.Contains(normalized, "solana"):
		return FamilySolana
	case strings.Contains(normalized, "near"):
		return FamilyNear
	case strings.Contains(normalized, "bitcoin"), strings.Contains(normalized, "btc"):
		return FamilyBitcoin
	case strings.Contains(normalized, "cosmos"), strings.Contains(normalized, "osmosis"):
		return FamilyCosmos
	default:
		return FamilyEVM
	}
}

// CharacteristicsOf returns characteristics for a chain, falling back to a
// conservative EVM default for unknown identifiers.
func CharacteristicsOf(chain types.ChainID) Characteristics {
	normalized := strings.ToLower(chain)
	if c, ok := registry[normalized]; ok {
		return c
	}
	if base, _, found := strings.Cut(normalized, "-"); found {
		if c, ok := registry[base]; ok {
			return c
		}
	}
	return Characteristics{
		Family:      FamilyOf(chain),
		BlockTime:   12.0,
		HasEIP1559:  true,
		CostTier:    3,
		NativeToken: "ETH",
	}
}

// CurveFor resolves the curve a chain's stealth keys live on: ed25519 for
// Solana and NEAR, secp256k1 for EVM, Bitcoin and Cosmos families. An empty
// chain tag is rejected.
func CurveFor(chain types.ChainID) (curves.Curve, error) {
	if strings.TrimSpace(chain) == "" {
		return nil, types.NewValidationError("chain", "empty chain tag")
	}
	switch FamilyOf(chain) {
	case FamilySolana, FamilyNear:
		return curves.ED25519(), nil
	default:
		return curves.K256(), nil
	}
}

// CostComparison is one chain's entry in a cost ranking.
type CostComparison struct {
	Chain          types.ChainID
	CostTier       int
	Recommendation string
}

var tierRecommendations = map[int]string{
	1: "Excellent - very low costs",
	2: "Good - affordable for frequent use",
	3: "Moderate - suitable for medium value txs",
	4: "Expensive - use for high value only",
	5: "Very expensive - consider alternatives",
}

// CompareCosts ranks chains by cost tier, cheapest first.
func CompareCosts(chainIDs []types.ChainID) []CostComparison {
	results := make([]CostComparison, 0, len(chainIDs))
	for _, chain := range chainIDs {
		c := CharacteristicsOf(chain)
		rec := tierRecommendations[c.CostTier]
		if rec == "" {
			rec = "Unknown"
		}
		results = append(results, CostComparison{Chain: chain, CostTier: c.CostTier, Recommendation: rec})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CostTier < results[j].CostTier
	})
	return results
}

// RecommendCheapest returns the cheapest chain whose block time does not
// exceed maxBlockTime (ignored when nil). Empty string when none qualifies.
func RecommendCheapest(chainIDs []types.ChainID, maxBlockTime *float64) types.ChainID {
	var cheapest types.ChainID
	cheapestTier := int(^uint(0) >> 1)
	for _, chain := range chainIDs {
		c := CharacteristicsOf(chain)
		if maxBlockTime != nil && c.BlockTime > *maxBlockTime {
			continue
		}
		if c.CostTier < cheapestTier {
			cheapestTier = c.CostTier
			cheapest = chain
		}
	}
	return cheapest
}
