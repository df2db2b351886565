package merging

import (
	"testing"

	"MS-Sequence-Tags/tag_generator/common"

	"github.com/stretchr/testify/assert"
)

func tag(start int, score float64, residues ...string) common.TagRecord {
	return common.TagRecord{StartPeak: start, Score: score, Residues: residues, MassDeltas: make([]float64, len(residues))}
}

func TestMergeDuplicateTags(t *testing.T) {
	tests := []struct {
		name string
		in   []common.TagRecord
		want []int // StartPeak of survivors
	}{
		{"empty", nil, []int{}},
		{"single", []common.TagRecord{tag(1, 1, "A")}, []int{1}},
		{"distinct", []common.TagRecord{tag(1, 1, "A"), tag(2, 1, "G")}, []int{1, 2}},
		{"keeps best", []common.TagRecord{tag(1, 1, "A", "G"), tag(2, 3, "A", "G"), tag(3, 2, "A", "G")}, []int{2}},
		{"earliest on tie", []common.TagRecord{tag(1, 2, "S"), tag(2, 2, "S")}, []int{1}},
		{"order preserved", []common.TagRecord{tag(1, 1, "A"), tag(2, 5, "G"), tag(3, 4, "A")}, []int{2, 3}},
		{"split residues compare by sequence", []common.TagRecord{tag(1, 1, "AG"), tag(2, 2, "A", "G")}, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeDuplicateTags(tt.in)
			starts := make([]int, 0, len(got))
			for _, g := range got {
				starts = append(starts, g.StartPeak)
			}
			assert.Equal(t, tt.want, starts)
		})
	}
}
