package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// MinSecretLength keeps generated HS256 keys above 256 bits of entropy.
	MinSecretLength = 44
)

// GenerateSecret returns a random alphanumeric string usable as JWT_SECRET.
func GenerateSecret(length int) (string, error) {
	if length < MinSecretLength {
		return "", fmt.Errorf("secret length %d is below minimum %d", length, MinSecretLength)
	}

	result := make([]byte, length)
	n := big.NewInt(int64(len(alphabet)))

	for i := range result {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		result[i] = alphabet[idx.Int64()]
	}

	return string(result), nil
}
