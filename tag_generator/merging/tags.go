package merging

import "MS-Sequence-Tags/tag_generator/common"

// MergeDuplicateTags collapses tags that spell the same residue sequence, keeping the
// highest-scoring record (the earliest one on ties). Survivors stay in emission order.
func MergeDuplicateTags(tags []common.TagRecord) []common.TagRecord {
	if len(tags) <= 1 { // Nothing to merge
		result := make([]common.TagRecord, len(tags))
		copy(result, tags)
		return result
	}

	best := make(map[string]int, len(tags)) // Sequence -> index of best record so far
	for i, tag := range tags {
		seq := tag.Sequence()
		if j, seen := best[seq]; !seen || tag.Score > tags[j].Score {
			best[seq] = i
		}
	}

	merged := make([]common.TagRecord, 0, len(best))
	for i, tag := range tags {
		if best[tag.Sequence()] == i {
			merged = append(merged, tag)
		}
	}
	return merged
}
