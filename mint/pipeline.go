// Package mint runs the three-stage Rune Agent mint flow: image upload,
// metadata upload, then the on-chain mint. Every stage degrades to a
// synthesized placeholder instead of aborting, so the flow always
// produces a complete result; the Source tags on the result record what
// was real and what was substituted.
package mint

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/runereum-labs/runereum/chain"
	"github.com/runereum-labs/runereum/core"
)

// Uploader is the object-storage surface the first two stages use.
// *akave.Client satisfies it.
type Uploader interface {
	UploadFile(ctx context.Context, filename, contentType string, data []byte) (string, error)
	UploadJSON(ctx context.Context, filename string, obj interface{}) (string, error)
}

const (
	imageFallbackPrefix    = "ipfs://QmRune"
	metadataFallbackPrefix = "ipfs://QmMeta"
	base36                 = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Pipeline runs mint attempts. One attempt at a time per call; no
// retries anywhere.
type Pipeline struct {
	uploader   Uploader
	minter     chain.Minter
	assets     fs.FS
	hatchDelay time.Duration

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// New builds a pipeline. Both collaborators may be nil: a nil uploader
// or minter simply forces that stage onto its fallback path, which is
// how the demo runs without external services.
func New(uploader Uploader, minter chain.Minter) *Pipeline {
	return &Pipeline{
		uploader:   uploader,
		minter:     minter,
		hatchDelay: 2 * time.Second,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the randomness source so fallbacks are
// deterministic under test.
func (p *Pipeline) WithRand(r *rand.Rand) *Pipeline {
	p.rng = r
	return p
}

// WithHatchDelay overrides the post-mint delay (0 disables it).
func (p *Pipeline) WithHatchDelay(d time.Duration) *Pipeline {
	p.hatchDelay = d
	return p
}

// WithAssets points the pipeline at the profile image files.
func (p *Pipeline) WithAssets(fsys fs.FS) *Pipeline {
	p.assets = fsys
	return p
}

// Run executes one mint attempt for the recipient. The returned result
// always has Success set: a failed stage substitutes its documented
// placeholder and the flow carries on. Stage-2 and stage-1 uploads that
// did succeed are never rolled back when a later stage fails.
func (p *Pipeline) Run(ctx context.Context, recipient string) core.MintResult {
	emotions, image := p.selectContent()

	result := core.MintResult{
		Success:  true,
		Owner:    recipient,
		Emotions: emotions,
	}

	// Stage 1 — image upload.
	result.ImageSource = core.SourceRemote
	imageURI, err := p.uploadImage(ctx, image)
	if err != nil {
		imageURI = imageFallbackPrefix + p.randomBase36(9)
		result.ImageSource = core.SourceFallback
		log.Printf("Image upload failed, using fallback URI: %v", err)
	}
	result.ImageURI = imageURI

	// Stage 2 — metadata upload.
	metadata := core.NFTMetadata{
		Name:        fmt.Sprintf("Rune Agent #%d", p.intn(1000)),
		Description: "A powerful AI agent with unique emotional attributes",
		Image:       imageURI,
		Attributes:  attributesFor(emotions),
	}
	result.MetadataSource = core.SourceRemote
	attributesURI, err := p.uploadMetadata(ctx, metadata)
	if err != nil {
		attributesURI = metadataFallbackPrefix + p.randomBase36(9)
		result.MetadataSource = core.SourceFallback
		log.Printf("Metadata upload failed, using fallback URI: %v", err)
	}
	result.AttributesURI = attributesURI

	// Stage 3 — mint.
	result.MintSource = core.SourceRemote
	receipt, err := p.submitMint(ctx, recipient, imageURI, attributesURI)
	if err != nil {
		result.MintTxHash = core.HashPool[p.intn(len(core.HashPool))]
		result.MintSource = core.SourceFallback
		log.Printf("Mint failed, using fallback hash: %v", err)
	} else {
		result.TokenID = receipt.TokenID
		result.MintTxHash = receipt.MintTxHash
		result.SetUrisTxHash = receipt.SetUrisTxHash
		result.Contract = receipt.Contract
	}

	// Artificial hatch delay kept from the demo UX.
	if p.hatchDelay > 0 {
		select {
		case <-time.After(p.hatchDelay):
		case <-ctx.Done():
		}
	}

	return result
}

func (p *Pipeline) uploadImage(ctx context.Context, image string) (string, error) {
	if p.uploader == nil {
		return "", fmt.Errorf("no uploader configured")
	}
	data, err := p.loadImage(image)
	if err != nil {
		return "", err
	}
	return p.uploader.UploadFile(ctx, "rune-agent.png", "image/png", data)
}

func (p *Pipeline) uploadMetadata(ctx context.Context, metadata core.NFTMetadata) (string, error) {
	if p.uploader == nil {
		return "", fmt.Errorf("no uploader configured")
	}
	return p.uploader.UploadJSON(ctx, "metadata.json", metadata)
}

func (p *Pipeline) submitMint(ctx context.Context, recipient, imageURI, attributesURI string) (*chain.MintReceipt, error) {
	if p.minter == nil {
		return nil, fmt.Errorf("no minter configured")
	}
	return p.minter.Mint(ctx, recipient, imageURI, attributesURI)
}

// loadImage reads a pool image from the assets FS. Without assets the
// payload is a 1x1 placeholder so the upload stage still exercises the
// storage service.
func (p *Pipeline) loadImage(image string) ([]byte, error) {
	if p.assets == nil {
		return placeholderPNG, nil
	}
	data, err := fs.ReadFile(p.assets, strings.TrimPrefix(image, "/"))
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", image, err)
	}
	return data, nil
}

// selectContent shuffles the emotion pool, keeps three, and picks one
// pool image.
func (p *Pipeline) selectContent() ([]core.Emotion, string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	emotions := make([]core.Emotion, len(core.EmotionPool))
	copy(emotions, core.EmotionPool)
	p.rng.Shuffle(len(emotions), func(i, j int) {
		emotions[i], emotions[j] = emotions[j], emotions[i]
	})
	image := core.ImagePool[p.rng.Intn(len(core.ImagePool))]
	return emotions[:3], image
}

func (p *Pipeline) intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(n)
}

func (p *Pipeline) randomBase36(n int) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(base36[p.rng.Intn(len(base36))])
	}
	return b.String()
}

func attributesFor(emotions []core.Emotion) []core.NFTAttribute {
	attrs := make([]core.NFTAttribute, len(emotions))
	for i, e := range emotions {
		attrs[i] = core.NFTAttribute{
			TraitType: "Emotion",
			Emotion:   e.Name,
			Value:     e.Value,
		}
	}
	return attrs
}

// Minimal valid PNG used when no asset files are mounted.
var placeholderPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}
