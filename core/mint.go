package core

// Emotion is one of the randomly selected emotional attributes embedded
// in a minted Rune Agent's metadata.
type Emotion struct {
	Name        string `json:"name"`
	Value       int    `json:"value"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// EmotionPool is the fixed set of emotions the mint pipeline draws from.
var EmotionPool = []Emotion{
	{Name: "Joy", Value: 92, Description: "Pure happiness and delight", Color: "text-yellow-400"},
	{Name: "Serenity", Value: 85, Description: "Deep inner peace", Color: "text-blue-400"},
	{Name: "Excitement", Value: 88, Description: "High energy enthusiasm", Color: "text-red-400"},
	{Name: "Wonder", Value: 78, Description: "Sense of awe", Color: "text-purple-400"},
	{Name: "Confidence", Value: 95, Description: "Strong self-assurance", Color: "text-green-400"},
}

// ImagePool is the fixed set of profile images the mint pipeline draws
// from.
var ImagePool = []string{
	"/profiles/p10.png",
	"/profiles/p11.png",
	"/profiles/p12.png",
	"/profiles/p13.png",
	"/profiles/p14.png",
}

// HashPool is the fixed set of plausible-looking transaction hashes used
// when the mint stage cannot reach the chain.
var HashPool = []string{
	"0x7a69c360c8d64e6c017760dcd19e646710b08a5d7a8c9b8d5106447a167c41e2",
	"0x3f89d6e8a42988e359d0ec16ff3029e814a10bcf12b34125988d6d493931f3b9",
	"0x9c12d9e9b8854d57b12c545e9a5b7789d15f34567890d4e456789d15f34567b1",
	"0x2e45f8d9c12e4567890d4e456789d15f34567890d4e456789d15f34567890a3c",
	"0x5f67890d4e456789d15f34567890d4e456789d15f34567890d4e456789d15f34",
}

// ValueSource records where a pipeline stage's output came from.
type ValueSource string

const (
	// SourceRemote means the external call succeeded and the value is real.
	SourceRemote ValueSource = "remote"
	// SourceFallback means the external call failed and a synthesized
	// placeholder was substituted.
	SourceFallback ValueSource = "fallback"
)

// MintResult is the terminal outcome of one run of the mint pipeline.
// It is created once per attempt and never mutated afterwards.
type MintResult struct {
	Success       bool      `json:"success"`
	TokenID       string    `json:"tokenId,omitempty"`
	MintTxHash    string    `json:"mintTxHash,omitempty"`
	SetUrisTxHash string    `json:"setUrisTxHash,omitempty"`
	ImageURI      string    `json:"imageUri,omitempty"`
	AttributesURI string    `json:"attributesUri,omitempty"`
	Owner         string    `json:"owner,omitempty"`
	Contract      string    `json:"contract,omitempty"`
	Emotions      []Emotion `json:"emotions,omitempty"`
	Error         string    `json:"error,omitempty"`

	// Provenance of each stage's output. The demo flow reports success
	// even when every stage fell back; these tags are how a caller can
	// tell the difference.
	ImageSource    ValueSource `json:"imageSource,omitempty"`
	MetadataSource ValueSource `json:"metadataSource,omitempty"`
	MintSource     ValueSource `json:"mintSource,omitempty"`
}

// NFTMetadata is the JSON document uploaded to object storage during
// the metadata stage.
type NFTMetadata struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Attributes  []NFTAttribute  `json:"attributes"`
}

// NFTAttribute is a single metadata attribute entry.
type NFTAttribute struct {
	TraitType string `json:"trait_type"`
	Emotion   string `json:"emotion"`
	Value     int    `json:"value"`
}
