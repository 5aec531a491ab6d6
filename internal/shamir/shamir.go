package shamir

import (
	"ciphera/internal/crypto"
	"ciphera/internal/domain"
)

const secretLen = 32

// Split divides a 32-byte secret into n shares such that any t of them
// reconstruct it exactly via Lagrange interpolation, and any fewer
// reveal nothing. Each byte of the secret is the constant term of an
// independent degree-(t-1) polynomial over GF(2^8); share ids run 1..n
// since x=0 would leak the secret directly.
func Split(secret [secretLen]byte, n, t int) ([]domain.SecretShare, error) {
	if t < 2 || t > n || n > 255 {
		return nil, domain.ErrBadParameters
	}

	coeffs := make([][]byte, secretLen)
	for i := 0; i < secretLen; i++ {
		coeffs[i] = make([]byte, t)
		coeffs[i][0] = secret[i]
		randTail, err := crypto.Random(t - 1)
		if err != nil {
			return nil, err
		}
		copy(coeffs[i][1:], randTail)
	}

	shares := make([]domain.SecretShare, n)
	for id := 1; id <= n; id++ {
		shares[id-1].ID = uint8(id)
		for i := 0; i < secretLen; i++ {
			shares[id-1].Data[i] = gfEval(coeffs[i], byte(id))
		}
	}
	return shares, nil
}

// Recover reconstructs the secret from t or more shares using Lagrange
// interpolation at x=0. t is the threshold the shares were split under;
// fewer than t distinct, non-zero-id shares returns ErrBelowThreshold
// rather than silently interpolating an underdetermined, wrong secret.
func Recover(shares []domain.SecretShare, t int) ([secretLen]byte, error) {
	var secret [secretLen]byte
	if t < 2 {
		return secret, domain.ErrBadParameters
	}
	if err := validateShareSet(shares); err != nil {
		return secret, err
	}
	if len(shares) < t {
		return secret, domain.ErrBelowThreshold
	}

	for byteIdx := 0; byteIdx < secretLen; byteIdx++ {
		var acc byte
		for i, si := range shares {
			var num, den byte = 1, 1
			for j, sj := range shares {
				if i == j {
					continue
				}
				num = gfMul(num, sj.ID)
				den = gfMul(den, gfAdd(sj.ID, si.ID))
			}
			term := gfMul(si.Data[byteIdx], gfDiv(num, den))
			acc = gfAdd(acc, term)
		}
		secret[byteIdx] = acc
	}
	return secret, nil
}

// Refresh recovers the secret from oldShares and re-splits it under a
// fresh random polynomial with threshold t and n = len(oldShares),
// invalidating every previously issued share without changing the
// secret they protect.
func Refresh(oldShares []domain.SecretShare, t int) ([]domain.SecretShare, error) {
	secret, err := Recover(oldShares, t)
	if err != nil {
		return nil, err
	}
	return Split(secret, len(oldShares), t)
}

func validateShareSet(shares []domain.SecretShare) error {
	seen := make(map[uint8]bool, len(shares))
	for _, s := range shares {
		if s.ID == 0 {
			return domain.ErrInvalidShareSet
		}
		if seen[s.ID] {
			return domain.ErrInvalidShareSet
		}
		seen[s.ID] = true
	}
	return nil
}
