package utils

import (
	"crypto/rand"
	"fmt"
)

const teamIDPrefix = "TEAM-"

// Crockford-style alphabet, no vowels or easily-confused characters, so
// tokens are readable over the phone at a registration desk.
const teamIDAlphabet = "23456789BCDFGHJKMNPQRSTVWXZ"

const teamIDSuffixLen = 8

// NewTeamID returns a human-readable team token: a fixed prefix plus a
// random suffix. Uniqueness is probabilistic; there is no reservation step.
func NewTeamID() (string, error) {
	buf := make([]byte, teamIDSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate team id: %w", err)
	}

	for i, b := range buf {
		buf[i] = teamIDAlphabet[int(b)%len(teamIDAlphabet)]
	}

	return teamIDPrefix + string(buf), nil
}
