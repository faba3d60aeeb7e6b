package verification

import (
	"encoding/hex"
	"fmt"

	"github.com/ferdiebergado/verikit/internal/pkg/security"
)

// TokenLength is the length of the opaque token string embedded in
// verification links. It matches the width of the unique token column.
const TokenLength = 64

// Generator produces cryptographically unguessable opaque token strings.
type Generator interface {
	Generate() (string, error)
}

// HexGenerator draws TokenLength/2 bytes from crypto/rand and hex-encodes
// them, yielding a fixed TokenLength-character string.
type HexGenerator struct{}

var _ Generator = (*HexGenerator)(nil)

func NewHexGenerator() *HexGenerator {
	return &HexGenerator{}
}

func (g *HexGenerator) Generate() (string, error) {
	b, err := security.GenerateRandomBytes(TokenLength / 2)
	if err != nil {
		return "", fmt.Errorf("generate token bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
