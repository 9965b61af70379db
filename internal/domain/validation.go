package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ethAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("%w: address required", ErrInvalidInput)
	}
	if !ethAddressPattern.MatchString(address) {
		return fmt.Errorf("%w: invalid ethereum address", ErrInvalidInput)
	}
	return nil
}

func ParseFID(raw string) (int64, error) {
	fid, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || fid <= 0 {
		return 0, fmt.Errorf("%w: fid must be a positive integer", ErrInvalidInput)
	}
	return fid, nil
}

func NormalizeUsername(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "@")
}

// DisplayAddress picks the address shown for on-chain activity: the first
// verified address, falling back to the custody address.
func DisplayAddress(p Profile) string {
	for _, addr := range p.VerifiedAddresses {
		if strings.TrimSpace(addr) != "" {
			return addr
		}
	}
	return p.CustodyAddress
}
