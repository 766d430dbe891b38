package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Verify required environment variables
	required := []string{
		"OPENAI_API_KEY",
		"AKAVE_API_URL",
	}

	for _, env := range required {
		if os.Getenv(env) == "" {
			log.Printf("Warning: %s environment variable not set\n", env)
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// APIAddr is the listen address for the REST API.
func APIAddr() string { return getEnv("API_ADDR", ":8080") }

// AkaveAPIURL is the base URL of the object storage service.
func AkaveAPIURL() string { return os.Getenv("AKAVE_API_URL") }

// AkaveBucket is the bucket files are uploaded into.
func AkaveBucket() string { return getEnv("AKAVE_BUCKET", "myBucket3") }

// OpenAIKey is the API key for the chat completion service.
func OpenAIKey() string { return os.Getenv("OPENAI_API_KEY") }

// RPCURL is the JSON-RPC endpoint of the test chain.
func RPCURL() string { return os.Getenv("RPC_URL") }

// PrivateKey is the hex-encoded key that signs mint transactions.
func PrivateKey() string { return os.Getenv("PRIVATE_KEY") }

// NFTContractAddress is the deployed RunereumNFT contract.
func NFTContractAddress() string { return os.Getenv("NFT_CONTRACT_ADDRESS") }

// NATSURL is the NATS server for lifecycle announcements.
func NATSURL() string { return getEnv("NATS_URL", "nats://localhost:4222") }

// DataDir is where BadgerDB keeps its files. Empty disables persistence.
func DataDir() string { return os.Getenv("DATA_DIR") }

// BlockExplorerURL is the explorer linked from chat replies.
func BlockExplorerURL() string {
	return getEnv("BLOCK_EXPLORER_URL", "https://sepolia.basescan.org")
}
