package io

import (
	"bufio"
	"fmt"
	stdio "io"
	"os"
	"strconv"
	"strings"

	"MS-Sequence-Tags/tag_generator/common"
)

// MGFReader provides streaming access to Mascot Generic Format peak lists.
type MGFReader struct {
	scanner *bufio.Scanner
	lineNum int
	current *common.Spectrum
	err     error
}

// NewMGFReader creates a reader over r.
func NewMGFReader(r stdio.Reader) *MGFReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	return &MGFReader{scanner: scanner}
}

// Next advances to the next spectrum. Returns false at end of input or on error.
func (r *MGFReader) Next() bool {
	r.current = nil
	spec, err := r.readSpectrum()
	if err != nil {
		if err != stdio.EOF {
			r.err = err
		}
		return false
	}
	r.current = spec
	return true
}

// Spectrum returns the current spectrum.
func (r *MGFReader) Spectrum() *common.Spectrum {
	return r.current
}

// Err returns the first error encountered while reading.
func (r *MGFReader) Err() error {
	return r.err
}

// readSpectrum reads one BEGIN IONS ... END IONS block.
func (r *MGFReader) readSpectrum() (*common.Spectrum, error) {
	var spec *common.Spectrum

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		// Blank lines and comments between or inside entries
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if spec == nil {
			if strings.EqualFold(line, "BEGIN IONS") {
				spec = &common.Spectrum{MSLevel: 2}
			}
			// Global parameters outside blocks are ignored
			continue
		}

		if strings.EqualFold(line, "END IONS") {
			return spec, nil
		}

		if key, value, ok := strings.Cut(line, "="); ok && !startsNumeric(line) {
			if err := parseHeader(spec, strings.ToUpper(strings.TrimSpace(key)), strings.TrimSpace(value)); err != nil {
				return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
			}
			continue
		}

		peak, err := parsePeak(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
		}
		spec.Peaks = append(spec.Peaks, peak)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if spec != nil {
		return nil, fmt.Errorf("line %d: unterminated BEGIN IONS block", r.lineNum)
	}
	return nil, stdio.EOF
}

func startsNumeric(line string) bool {
	c := line[0]
	return (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+'
}

// parseHeader handles the header keys the tag generator needs.
func parseHeader(spec *common.Spectrum, key, value string) error {
	switch key {
	case "TITLE":
		spec.Title = value
	case "PEPMASS":
		// PEPMASS=mz [intensity]
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return fmt.Errorf("empty PEPMASS")
		}
		mz, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fmt.Errorf("invalid PEPMASS %q: %w", value, err)
		}
		spec.Precursor.MZ = mz
	case "CHARGE":
		charge, err := parseCharge(value)
		if err != nil {
			return err
		}
		spec.Precursor.Charge = charge
	case "MSLEVEL":
		level, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid MSLEVEL %q: %w", value, err)
		}
		spec.MSLevel = level
	}
	return nil
}

// parseCharge accepts "2+", "2", "3-" and the first of a list like "2+ and 3+".
func parseCharge(value string) (int, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty CHARGE")
	}
	s := fields[0]
	sign := 1
	switch {
	case strings.HasSuffix(s, "+"):
		s = strings.TrimSuffix(s, "+")
	case strings.HasSuffix(s, "-"):
		s = strings.TrimSuffix(s, "-")
		sign = -1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid CHARGE %q: %w", value, err)
	}
	return sign * n, nil
}

// parsePeak parses "mz intensity [charge]" separated by spaces or tabs.
func parsePeak(line string) (common.Peak, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return common.Peak{}, fmt.Errorf("invalid peak line: %s", line)
	}
	mz, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return common.Peak{}, fmt.Errorf("invalid m/z: %w", err)
	}
	intensity, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return common.Peak{}, fmt.Errorf("invalid intensity: %w", err)
	}
	return common.Peak{MZ: mz, Intensity: intensity}, nil
}

// ReadMGF loads every spectrum in an MGF file. Untitled spectra are named by Fingerprint.
func ReadMGF(path string) ([]*common.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var spectra []*common.Spectrum
	reader := NewMGFReader(f)
	for reader.Next() {
		spec := reader.Spectrum()
		if spec.Title == "" {
			spec.Title = Fingerprint(spec)
		}
		spectra = append(spectra, spec)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spectra, nil
}
