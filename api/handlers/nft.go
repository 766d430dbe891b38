package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/runereum-labs/runereum/communication"
	"github.com/runereum-labs/runereum/core"
)

// UploadImage - stores an uploaded NFT image on Akave and returns its
// IPFS URI
func (h *Handlers) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uri, err := h.Uploader.UploadFile(c.Request.Context(), header.Filename, contentType, data)
	if err != nil {
		log.Printf("Image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "imageUri": uri})
}

// UploadMetadata - builds the NFT metadata document and stores it on
// Akave
func (h *Handlers) UploadMetadata(c *gin.Context) {
	var req struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		ImageURI    string         `json:"imageUri"`
		Emotions    []core.Emotion `json:"emotions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid metadata request"})
		return
	}

	if req.Description == "" {
		req.Description = "Emotion NFT"
	}

	attrs := make([]core.NFTAttribute, len(req.Emotions))
	for i, e := range req.Emotions {
		attrs[i] = core.NFTAttribute{TraitType: "Emotion", Emotion: e.Name, Value: e.Value}
	}

	metadata := core.NFTMetadata{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.ImageURI,
		Attributes:  attrs,
	}

	uri, err := h.Uploader.UploadJSON(c.Request.Context(), fmt.Sprintf("%s-metadata.json", req.Name), metadata)
	if err != nil {
		log.Printf("Metadata upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to upload metadata",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "attributesUri": uri})
}

// MintNFT - mints a token and attaches the given URIs on-chain
func (h *Handlers) MintNFT(c *gin.Context) {
	var req struct {
		RecipientAddress string `json:"recipientAddress"`
		ImageURI         string `json:"imageUri"`
		AttributesURI    string `json:"attributesUri"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}
	if req.RecipientAddress == "" || req.ImageURI == "" || req.AttributesURI == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}
	if h.Minter == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mint NFT"})
		return
	}

	receipt, err := h.Minter.Mint(c.Request.Context(), req.RecipientAddress, req.ImageURI, req.AttributesURI)
	if err != nil {
		log.Printf("Mint failed for %s: %v", req.RecipientAddress, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mint NFT"})
		return
	}

	// The tx hash callers track is the setUris one, matching what the
	// hatching screen links to.
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"tokenId":         receipt.TokenID,
		"transactionHash": receipt.SetUrisTxHash,
		"mintTxHash":      receipt.MintTxHash,
		"contract":        receipt.Contract,
		"imageUri":        req.ImageURI,
		"attributesUri":   req.AttributesURI,
	})
}

// RunMint - runs the full generate/upload/mint pipeline for a recipient
func (h *Handlers) RunMint(c *gin.Context) {
	var req struct {
		RecipientAddress string `json:"recipientAddress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RecipientAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipientAddress is required"})
		return
	}

	result := h.Pipeline.Run(c.Request.Context(), req.RecipientAddress)
	communication.BroadcastEvent(communication.EventMintCompleted, result)

	c.JSON(http.StatusOK, gin.H{"result": result})
}
