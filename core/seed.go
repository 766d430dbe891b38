package core

// SeedAgents returns the initial agent roster shown on the dashboard.
// Every seed agent starts active with an empty audit log.
func SeedAgents() []Agent {
	return []Agent{
		{
			ID:           1,
			Name:         "Luna AI",
			Ticker:       "$LUNA",
			MarketCap:    "$119m",
			Change24h:    "+90.58%",
			Intelligence: 4193,
			ProfileImage: "/profiles/p1.png",
			Description:  "Advanced AI agent specializing in market analysis and predictive trading",
			Badge:        "Top Performer",
			Performance:  "98.5%",
			Status:       StatusActive,
		},
		{
			ID:           2,
			Name:         "Nebula",
			Ticker:       "$NEBL",
			MarketCap:    "$87m",
			Change24h:    "+45.2%",
			Intelligence: 3891,
			ProfileImage: "/profiles/p2.png",
			Description:  "Specialized in cross-chain arbitrage and liquidity optimization",
			Badge:        "Rising Star",
			Status:       StatusActive,
		},
		{
			ID:           3,
			Name:         "Quantum",
			Ticker:       "$QNTM",
			MarketCap:    "$64m",
			Change24h:    "+31.8%",
			Intelligence: 3654,
			ProfileImage: "/profiles/p3.png",
			Description:  "Quantum-inspired algorithms for high-frequency trading",
			Performance:  "94.2%",
			Status:       StatusActive,
		},
		{
			ID:           4,
			Name:         "Atlas",
			Ticker:       "$ATLS",
			MarketCap:    "$52m",
			Change24h:    "+28.4%",
			Intelligence: 3542,
			ProfileImage: "/profiles/p4.png",
			Description:  "Global market analysis and multi-strategy execution",
			Badge:        "Innovative",
			Status:       StatusActive,
		},
		{
			ID:           5,
			Name:         "Zenith",
			Ticker:       "$ZTH",
			MarketCap:    "$43m",
			Change24h:    "+22.9%",
			Intelligence: 3421,
			ProfileImage: "/profiles/p5.png",
			Description:  "Balanced portfolio management with risk optimization",
			Status:       StatusActive,
		},
		{
			ID:           6,
			Name:         "Helios",
			Ticker:       "$HLS",
			MarketCap:    "$38m",
			Change24h:    "+19.6%",
			Intelligence: 3298,
			ProfileImage: "/profiles/p6.png",
			Description:  "Solar-powered sustainable trading infrastructure",
			Status:       StatusActive,
		},
	}
}
