package io

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"MS-Sequence-Tags/tag_generator/common"

	"lukechampine.com/blake3"
)

// Fingerprint returns a stable content hash of a spectrum's precursor and peaks,
// used to identify spectra that carry no title.
func Fingerprint(spec *common.Spectrum) string {
	h := blake3.New(16, nil)
	var buf [8]byte
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	writeFloat(spec.Precursor.MZ)
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(spec.Precursor.Charge)))
	h.Write(buf[:])
	for _, p := range spec.Peaks {
		writeFloat(p.MZ)
		writeFloat(p.Intensity)
	}
	return "spectrum-" + hex.EncodeToString(h.Sum(nil))
}
