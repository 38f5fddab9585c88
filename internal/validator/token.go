package validator

import (
	"crypto/rand"
	"fmt"
)

const alphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// largest multiple of len(alphanumerics) below 256, bytes above are rejected
// to keep the distribution uniform
const maxUnbiased = 256 - 256%len(alphanumerics)

// NewToken returns TokenLength random alphanumerics terminated by a newline.
func NewToken() ([]byte, error) {
	token := make([]byte, 0, TokenLength+1)
	buf := make([]byte, TokenLength)

	for len(token) < TokenLength {
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("read random bytes: %w", err)
		}

		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}

			token = append(token, alphanumerics[int(b)%len(alphanumerics)])
			if len(token) == TokenLength {
				break
			}
		}
	}

	return append(token, '\n'), nil
}
