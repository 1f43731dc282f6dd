package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/roach88/sortvis/internal/grid"
)

// DomainImage separates image digests from any other SHA-256 use.
// The version suffix allows the layout to change later.
const DomainImage = "sortvis/image/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ImageDigest identifies a pixel grid by content. Dimensions are part of the
// digest, so a 2x3 and a 3x2 grid of the same bytes differ.
func ImageDigest(px grid.PixelGrid) string {
	buf := make([]byte, 0, 8+4*px.Rows()*px.Cols())
	buf = binary.BigEndian.AppendUint32(buf, uint32(px.Rows()))
	buf = binary.BigEndian.AppendUint32(buf, uint32(px.Cols()))
	for _, row := range px {
		for _, p := range row {
			buf = append(buf, p.R, p.G, p.B, p.A)
		}
	}
	return hashWithDomain(DomainImage, buf)
}
