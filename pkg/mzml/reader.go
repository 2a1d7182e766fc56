package mzml

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/benchlab/isoquant/pkg/core"
)

// Index holds one fully decoded fraction: retention time, MS level and peak
// list per scan number. It is immutable once built and safe for concurrent
// readers; it implements the integration engine's SpectrumSource interface.
type Index struct {
	scans   []int
	records map[int]spectrumRecord
}

type spectrumRecord struct {
	rt      float64 // minutes; -1 when the file carries no scan start time
	msLevel int
	peaks   []core.Peak
}

// scanIDPattern extracts the scan number from a spectrum id attribute,
// e.g. "controllerType=0 controllerNumber=1 scan=4912".
var scanIDPattern = regexp.MustCompile(`scan=(\d+)`)

// Load reads and decodes a whole mzML file into an Index.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mzml file: %w", err)
	}
	defer f.Close()

	idx, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return idx, nil
}

// Read decodes mzML content from r. Both plain mzML and indexedmzML
// documents are accepted.
func Read(r io.Reader) (*Index, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no mzML element found")
		}
		if err != nil {
			return nil, err
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "indexedmzML":
			// descend to the wrapped mzML element
		case "mzML":
			var content mzMLContent
			if err := d.DecodeElement(&content, &se); err != nil {
				return nil, err
			}
			return buildIndex(&content)
		default:
			return nil, fmt.Errorf("unexpected root element %q", se.Name.Local)
		}
	}
}

func buildIndex(content *mzMLContent) (*Index, error) {
	idx := &Index{
		records: make(map[int]spectrumRecord, len(content.Run.SpectrumList.Spectrum)),
	}

	for i := range content.Run.SpectrumList.Spectrum {
		sp := &content.Run.SpectrumList.Spectrum[i]

		scanNum := scanNumber(sp, i)
		if _, exists := idx.records[scanNum]; exists {
			return nil, fmt.Errorf("duplicate scan number %d", scanNum)
		}

		rec := spectrumRecord{rt: -1}
		for _, cv := range sp.CvPar {
			if cv.Accession == cvMSLevel {
				level, err := strconv.Atoi(cv.Value)
				if err != nil {
					return nil, fmt.Errorf("scan %d: invalid ms level %q", scanNum, cv.Value)
				}
				rec.msLevel = level
			}
		}

		rt, err := retentionTimeMinutes(sp)
		if err != nil {
			return nil, fmt.Errorf("scan %d: %w", scanNum, err)
		}
		rec.rt = rt

		peaks, err := decodePeaks(sp)
		if err != nil {
			return nil, fmt.Errorf("scan %d: %w", scanNum, err)
		}
		rec.peaks = peaks

		idx.records[scanNum] = rec
		idx.scans = append(idx.scans, scanNum)
	}

	sort.Ints(idx.scans)
	return idx, nil
}

// scanNumber extracts the scan number from the spectrum id attribute,
// falling back to the spectrum position when the id has no scan= field.
func scanNumber(sp *spectrum, position int) int {
	if m := scanIDPattern.FindStringSubmatch(sp.ID); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return position + 1
}

// retentionTimeMinutes finds the scan start time, normalized to minutes.
func retentionTimeMinutes(sp *spectrum) (float64, error) {
	for _, sc := range sp.ScanList.Scan {
		for _, cv := range sc.CvPar {
			if cv.Accession != cvScanStartTime {
				continue
			}
			rt, err := strconv.ParseFloat(cv.Value, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid scan start time %q", cv.Value)
			}
			// Assume seconds unless the unit says minutes
			if cv.UnitAccession != unitMinute {
				rt /= 60
			}
			return rt, nil
		}
	}
	return -1, nil
}

// decodePeaks pairs the m/z and intensity binary arrays of a spectrum into
// a peak list.
func decodePeaks(sp *spectrum) ([]core.Peak, error) {
	var mzs, intensities []float64

	for i := range sp.BinaryDataArrayList.BinaryDataArray {
		arr := &sp.BinaryDataArrayList.BinaryDataArray[i]

		isMZ := false
		isIntensity := false
		for _, cv := range arr.CvPar {
			switch cv.Accession {
			case cvMZArray:
				isMZ = true
			case cvIntensityArray:
				isIntensity = true
			}
		}
		if !isMZ && !isIntensity {
			continue
		}

		values, err := decodeBinaryArray(arr)
		if err != nil {
			return nil, err
		}
		if isMZ {
			mzs = values
		} else {
			intensities = values
		}
	}

	if mzs == nil && intensities == nil {
		return nil, nil
	}
	if len(mzs) != len(intensities) {
		return nil, fmt.Errorf("m/z and intensity array lengths differ: %d vs %d", len(mzs), len(intensities))
	}

	peaks := make([]core.Peak, len(mzs))
	for i := range mzs {
		peaks[i] = core.Peak{MZ: mzs[i], Intensity: intensities[i]}
	}
	return peaks, nil
}

// decodeBinaryArray base64-decodes one binary data array, inflates it when
// zlib-compressed and converts it to float64 values.
func decodeBinaryArray(arr *binaryDataArray) ([]float64, error) {
	compressed := false
	precision := 0
	for _, cv := range arr.CvPar {
		switch cv.Accession {
		case cvZlib:
			compressed = true
		case cvNoCompression:
			compressed = false
		case cvFloat64:
			precision = 64
		case cvFloat32:
			precision = 32
		}
	}
	if precision == 0 {
		return nil, ErrUnknownPrecision
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(arr.Binary))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 peak data: %w", err)
	}

	if compressed {
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("invalid zlib peak data: %w", err)
		}
		defer zr.Close()
		data, err = io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("failed to inflate peak data: %w", err)
		}
	}

	switch precision {
	case 64:
		if len(data)%8 != 0 {
			return nil, fmt.Errorf("binary array length %d not a multiple of 8", len(data))
		}
		values := make([]float64, len(data)/8)
		for i := range values {
			bits := binary.LittleEndian.Uint64(data[i*8:])
			values[i] = math.Float64frombits(bits)
		}
		return values, nil
	default:
		if len(data)%4 != 0 {
			return nil, fmt.Errorf("binary array length %d not a multiple of 4", len(data))
		}
		values := make([]float64, len(data)/4)
		for i := range values {
			bits := binary.LittleEndian.Uint32(data[i*4:])
			values[i] = float64(math.Float32frombits(bits))
		}
		return values, nil
	}
}

// NumSpectra returns the number of spectra in the index.
func (x *Index) NumSpectra() int {
	return len(x.scans)
}

// Scans returns all scan numbers in ascending order. Callers must not
// modify the returned slice.
func (x *Index) Scans() []int {
	return x.scans
}

// RetentionTime returns the retention time of a scan in minutes.
func (x *Index) RetentionTime(scan int) (float64, error) {
	rec, ok := x.records[scan]
	if !ok {
		return 0, ErrScanNotFound
	}
	return rec.rt, nil
}

// MSLevel returns the MS level of a scan.
func (x *Index) MSLevel(scan int) (int, error) {
	rec, ok := x.records[scan]
	if !ok {
		return 0, ErrScanNotFound
	}
	return rec.msLevel, nil
}

// Peaks returns the peak list of a scan.
func (x *Index) Peaks(scan int) ([]core.Peak, error) {
	rec, ok := x.records[scan]
	if !ok {
		return nil, ErrScanNotFound
	}
	return rec.peaks, nil
}
