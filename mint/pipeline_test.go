package mint

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/runereum-labs/runereum/chain"
	"github.com/runereum-labs/runereum/core"
)

type fakeUploader struct {
	fileURI string
	jsonURI string
	err     error

	fileCalls int
	jsonCalls int
}

func (f *fakeUploader) UploadFile(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	f.fileCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.fileURI, nil
}

func (f *fakeUploader) UploadJSON(ctx context.Context, filename string, obj interface{}) (string, error) {
	f.jsonCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.jsonURI, nil
}

type fakeMinter struct {
	receipt *chain.MintReceipt
	err     error
}

func (f *fakeMinter) Address() string { return "0xminter" }

func (f *fakeMinter) Mint(ctx context.Context, recipient, imageURI, attributesURI string) (*chain.MintReceipt, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.receipt, nil
}

const recipient = "0x1234567890abcdef1234567890abcdef12345678"

func TestRunAllStagesSucceed(t *testing.T) {
	uploader := &fakeUploader{fileURI: "ipfs://QmImageReal", jsonURI: "ipfs://QmMetaReal"}
	minter := &fakeMinter{receipt: &chain.MintReceipt{
		TokenID:       "42",
		MintTxHash:    "0xmint",
		SetUrisTxHash: "0xseturi",
		Contract:      "0xcontract",
	}}

	p := New(uploader, minter).WithHatchDelay(0)
	result := p.Run(context.Background(), recipient)

	if !result.Success {
		t.Fatal("Expected success")
	}
	if result.ImageURI != "ipfs://QmImageReal" || result.ImageSource != core.SourceRemote {
		t.Errorf("Unexpected image stage: %s (%s)", result.ImageURI, result.ImageSource)
	}
	if result.AttributesURI != "ipfs://QmMetaReal" || result.MetadataSource != core.SourceRemote {
		t.Errorf("Unexpected metadata stage: %s (%s)", result.AttributesURI, result.MetadataSource)
	}
	if result.TokenID != "42" || result.MintTxHash != "0xmint" || result.MintSource != core.SourceRemote {
		t.Errorf("Unexpected mint stage: %+v", result)
	}
	if result.Owner != recipient {
		t.Errorf("Expected owner %s, got %s", recipient, result.Owner)
	}
	if len(result.Emotions) != 3 {
		t.Errorf("Expected 3 emotions, got %d", len(result.Emotions))
	}
	if uploader.fileCalls != 1 || uploader.jsonCalls != 1 {
		t.Errorf("Expected one call per upload stage, got %d/%d", uploader.fileCalls, uploader.jsonCalls)
	}
}

func TestRunEveryStageFallsBack(t *testing.T) {
	// Nil collaborators force every stage onto its fallback path.
	p := New(nil, nil).WithHatchDelay(0).WithRand(rand.New(rand.NewSource(7)))

	result := p.Run(context.Background(), recipient)

	if !result.Success {
		t.Fatal("A fully degraded run must still report success")
	}
	if !strings.HasPrefix(result.ImageURI, "ipfs://QmRune") {
		t.Errorf("Expected QmRune fallback image URI, got %s", result.ImageURI)
	}
	if len(result.ImageURI) != len("ipfs://QmRune")+9 {
		t.Errorf("Expected 9 random characters in fallback image URI, got %s", result.ImageURI)
	}
	if result.ImageSource != core.SourceFallback {
		t.Errorf("Expected fallback image source, got %s", result.ImageSource)
	}
	if !strings.HasPrefix(result.AttributesURI, "ipfs://QmMeta") {
		t.Errorf("Expected QmMeta fallback metadata URI, got %s", result.AttributesURI)
	}
	if result.MetadataSource != core.SourceFallback {
		t.Errorf("Expected fallback metadata source, got %s", result.MetadataSource)
	}

	found := false
	for _, h := range core.HashPool {
		if result.MintTxHash == h {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Fallback mint hash %s is not from the hash pool", result.MintTxHash)
	}
	if result.MintSource != core.SourceFallback {
		t.Errorf("Expected fallback mint source, got %s", result.MintSource)
	}
}

func TestRunUploadFailsMintSucceeds(t *testing.T) {
	uploader := &fakeUploader{err: fmt.Errorf("storage unreachable")}
	minter := &fakeMinter{receipt: &chain.MintReceipt{TokenID: "7", MintTxHash: "0xabc", SetUrisTxHash: "0xdef"}}

	p := New(uploader, minter).WithHatchDelay(0).WithRand(rand.New(rand.NewSource(1)))
	result := p.Run(context.Background(), recipient)

	if !result.Success {
		t.Fatal("Expected success")
	}
	if result.ImageSource != core.SourceFallback || result.MetadataSource != core.SourceFallback {
		t.Errorf("Expected fallback uploads, got %s/%s", result.ImageSource, result.MetadataSource)
	}
	if result.MintSource != core.SourceRemote {
		t.Errorf("Expected remote mint after upload fallbacks, got %s", result.MintSource)
	}
	if result.TokenID != "7" {
		t.Errorf("Expected token 7, got %s", result.TokenID)
	}
}

func TestSelectContentDeterministic(t *testing.T) {
	p := New(nil, nil).WithRand(rand.New(rand.NewSource(3)))

	emotions, image := p.selectContent()
	if len(emotions) != 3 {
		t.Fatalf("Expected 3 emotions, got %d", len(emotions))
	}

	seen := make(map[string]bool)
	for _, e := range emotions {
		if seen[e.Name] {
			t.Errorf("Duplicate emotion %s", e.Name)
		}
		seen[e.Name] = true

		inPool := false
		for _, pe := range core.EmotionPool {
			if pe == e {
				inPool = true
				break
			}
		}
		if !inPool {
			t.Errorf("Emotion %+v not from the pool", e)
		}
	}

	inPool := false
	for _, pi := range core.ImagePool {
		if pi == image {
			inPool = true
			break
		}
	}
	if !inPool {
		t.Errorf("Image %s not from the pool", image)
	}
}
