package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	stdio "io"
	"strconv"
	"strings"

	"MS-Sequence-Tags/tag_generator/alphabet"
	"MS-Sequence-Tags/tag_generator/common"
	"MS-Sequence-Tags/tag_generator/sequence"
)

// Report is the tag output of one spectrum.
type Report struct {
	Spectrum  string
	Truncated bool
	Error     string
	Tags      []common.TagRecord
}

// tsvHeader lists the WriteTSV columns.
var tsvHeader = []string{"spectrum", "start_peak", "start_mz", "end_peak", "score", "tag", "reverse_tag", "mass_deltas", "residue_mass"}

// residueMass is the summed alphabet mass of a tag, nil if a code is unknown.
func residueMass(tag common.TagRecord, residues *alphabet.Alphabet) *float64 {
	if residues == nil {
		return nil
	}
	m, ok := sequence.Mass(tag.Residues, residues)
	if !ok {
		return nil
	}
	return &m
}

// WriteTSV writes one line per tag. Rejected spectra are written as comment lines.
// residue_mass is the alphabet mass of the tag, to compare against the summed mass_deltas.
func WriteTSV(w stdio.Writer, reports []Report, residues *alphabet.Alphabet) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.Join(tsvHeader, "\t"))
	for _, rep := range reports {
		if rep.Error != "" {
			fmt.Fprintf(bw, "# %s\terror\t%s\n", rep.Spectrum, rep.Error)
			continue
		}
		if rep.Truncated {
			fmt.Fprintf(bw, "# %s\ttruncated\n", rep.Spectrum)
		}
		for _, tag := range rep.Tags {
			deltas := make([]string, len(tag.MassDeltas))
			for i, d := range tag.MassDeltas {
				deltas[i] = strconv.FormatFloat(d, 'f', 5, 64)
			}
			mass := "NA"
			if m := residueMass(tag, residues); m != nil {
				mass = strconv.FormatFloat(*m, 'f', 5, 64)
			}
			fmt.Fprintf(bw, "%s\t%d\t%.5f\t%d\t%.4f\t%s\t%s\t%s\t%s\n",
				rep.Spectrum, tag.StartPeak, tag.StartMZ, tag.EndPeak, tag.Score,
				tag.Sequence(), sequence.ReverseString(tag.Residues), strings.Join(deltas, ","), mass)
		}
	}
	return bw.Flush()
}

type jsonTag struct {
	StartPeak   int       `json:"start_peak"`
	StartMZ     float64   `json:"start_mz"`
	EndPeak     int       `json:"end_peak"`
	Score       float64   `json:"score"`
	Sequence    string    `json:"sequence"`
	Residues    []string  `json:"residues"`
	MassDeltas  []float64 `json:"mass_deltas"`
	ResidueMass *float64  `json:"residue_mass,omitempty"`
}

type jsonReport struct {
	Spectrum  string    `json:"spectrum"`
	Truncated bool      `json:"truncated,omitempty"`
	Error     string    `json:"error,omitempty"`
	Tags      []jsonTag `json:"tags"`
}

// WriteJSON writes all reports as one indented JSON array.
func WriteJSON(w stdio.Writer, reports []Report, residues *alphabet.Alphabet) error {
	out := make([]jsonReport, 0, len(reports))
	for _, rep := range reports {
		jr := jsonReport{
			Spectrum:  rep.Spectrum,
			Truncated: rep.Truncated,
			Error:     rep.Error,
			Tags:      make([]jsonTag, 0, len(rep.Tags)),
		}
		for _, tag := range rep.Tags {
			jr.Tags = append(jr.Tags, jsonTag{
				StartPeak:   tag.StartPeak,
				StartMZ:     tag.StartMZ,
				EndPeak:     tag.EndPeak,
				Score:       tag.Score,
				Sequence:    tag.Sequence(),
				Residues:    tag.Residues,
				MassDeltas:  tag.MassDeltas,
				ResidueMass: residueMass(tag, residues),
			})
		}
		out = append(out, jr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
