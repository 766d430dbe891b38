package main

import (
	"context"
	"flag"
	"log"

	"github.com/runereum-labs/runereum/ai"
	"github.com/runereum-labs/runereum/api"
	"github.com/runereum-labs/runereum/api/handlers"
	"github.com/runereum-labs/runereum/akave"
	"github.com/runereum-labs/runereum/chain"
	"github.com/runereum-labs/runereum/chat"
	"github.com/runereum-labs/runereum/communication"
	"github.com/runereum-labs/runereum/config"
	"github.com/runereum-labs/runereum/mint"
	"github.com/runereum-labs/runereum/registry"
	"github.com/runereum-labs/runereum/storage"
)

func main() {
	addr := flag.String("addr", config.APIAddr(), "API listen address")
	natsURL := flag.String("nats", config.NATSURL(), "NATS URL")
	dataDir := flag.String("data-dir", config.DataDir(), "BadgerDB directory (empty disables persistence)")
	seed := flag.Bool("seed", true, "Seed the dashboard's demo agents on startup")
	flag.Parse()

	store := registry.NewStore()
	if *seed {
		store = registry.NewSeededStore()
	}

	manager := registry.NewManager(store).
		WithBroadcaster(communication.BroadcastEvent)

	// NATS is optional; lifecycle events just stay local without it.
	messenger, err := communication.NewMessenger(*natsURL)
	if err != nil {
		log.Printf("NATS unavailable at %s, lifecycle events disabled: %v", *natsURL, err)
	} else {
		defer messenger.Close()
		manager.WithMessenger(messenger)
	}

	if *dataDir != "" {
		db, err := storage.GetDBStorage(*dataDir)
		if err != nil {
			log.Fatalf("Failed to open storage at %s: %v", *dataDir, err)
		}
		defer db.Close()

		repo := storage.NewAgentRepository(db)
		manager.WithRepository(repo)
		if err := manager.Restore(); err != nil {
			log.Printf("Failed to restore agents from storage: %v", err)
		}
	}

	uploader := akave.NewClient(config.AkaveAPIURL(), config.AkaveBucket())

	// Minting works without a chain connection too; the pipeline falls
	// back to simulated hashes when the minter is missing.
	var minter chain.Minter
	if config.RPCURL() != "" && config.PrivateKey() != "" && config.NFTContractAddress() != "" {
		m, err := chain.NewNFTMinter(context.Background(), chain.Config{
			RPCURL:          config.RPCURL(),
			PrivateKey:      config.PrivateKey(),
			ContractAddress: config.NFTContractAddress(),
		})
		if err != nil {
			log.Printf("Chain connection failed, minting will use fallbacks: %v", err)
		} else {
			defer m.Close()
			minter = m
		}
	}

	pipeline := mint.New(uploader, minter)
	simulator := chat.NewSimulator(ai.NewOpenAIResponder(), config.BlockExplorerURL())

	h := handlers.New(manager, simulator, pipeline, uploader, minter)

	log.Printf("Runereum API listening on %s", *addr)
	log.Fatal(api.StartServer(*addr, h))
}
