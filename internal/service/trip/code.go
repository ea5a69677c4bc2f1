package trip

import (
	"crypto/rand"
	"fmt"
)

// inviteAlphabet leaves out 0, O, 1 and I so codes can be read aloud.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const InviteCodeLength = 8

// GenerateInviteCode returns a random code drawn from inviteAlphabet.
func GenerateInviteCode() (string, error) {
	buf := make([]byte, InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}

	// 256 is a multiple of len(inviteAlphabet), so the modulo is unbiased.
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}
