package core

// AgentCapability describes one of the capabilities an agent can be
// deployed with.
type AgentCapability struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Chain describes a network an agent can be deployed on.
type Chain struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	ChainID int    `json:"chainId"`
	Testnet bool   `json:"testnet,omitempty"`
}

// SupportedCapabilities lists every capability the deploy flow accepts.
var SupportedCapabilities = []AgentCapability{
	{ID: "trade", Name: "Trading", Description: "Execute trades and manage positions"},
	{ID: "analyze", Name: "Market Analysis", Description: "Analyze market data and trends"},
	{ID: "automate", Name: "Task Automation", Description: "Automate repetitive tasks"},
	{ID: "interact", Name: "Social Interaction", Description: "Interact with other agents and users"},
}

// SupportedChains lists every network the deploy flow accepts.
var SupportedChains = []Chain{
	{ID: "base-sepolia", Name: "Base Sepolia", ChainID: 84532, Testnet: true},
	{ID: "optimism", Name: "Optimism", ChainID: 10},
	{ID: "arbitrum", Name: "Arbitrum", ChainID: 42161},
}
