// Package mzml provides read access to mzML mass spectrometry files and
// builds the in-memory spectral index that the integration engine queries.
package mzml

import "errors"

// mzML controlled vocabulary accessions used while reading
// (http://www.peptideatlas.org/tmp/mzML1.1.0.html)
const (
	cvMSLevel        = "MS:1000511"
	cvScanStartTime  = "MS:1000016"
	cvMZArray        = "MS:1000514"
	cvIntensityArray = "MS:1000515"
	cvFloat64        = "MS:1000523"
	cvFloat32        = "MS:1000521"
	cvZlib           = "MS:1000574"
	cvNoCompression  = "MS:1000576"

	unitMinute = "UO:0000031"
	unitSecond = "UO:0000010"
)

var (
	// ErrScanNotFound means the requested scan number is not in the index
	ErrScanNotFound = errors.New("mzml: scan not found in index")
	// ErrUnknownPrecision means a binary data array declares no supported
	// float precision
	ErrUnknownPrecision = errors.New("mzml: unknown binary data precision")
)

// The mzML content that we read. Only the fields needed to build the
// spectral index are parsed.
type mzMLContent struct {
	Run run `xml:"run"`
}

type run struct {
	ID           string       `xml:"id,attr"`
	SpectrumList spectrumList `xml:"spectrumList"`
}

type spectrumList struct {
	Count    int        `xml:"count,attr"`
	Spectrum []spectrum `xml:"spectrum"`
}

type spectrum struct {
	Index               int                 `xml:"index,attr"`
	ID                  string              `xml:"id,attr"`
	DefaultArrayLength  int64               `xml:"defaultArrayLength,attr"`
	CvPar               []cvParam           `xml:"cvParam"`
	ScanList            scanList            `xml:"scanList"`
	BinaryDataArrayList binaryDataArrayList `xml:"binaryDataArrayList"`
}

type scanList struct {
	Count int       `xml:"count,attr"`
	Scan  []scan    `xml:"scan"`
	CvPar []cvParam `xml:"cvParam"`
}

type scan struct {
	CvPar []cvParam `xml:"cvParam"`
}

type binaryDataArrayList struct {
	Count           int               `xml:"count,attr"`
	BinaryDataArray []binaryDataArray `xml:"binaryDataArray"`
}

type binaryDataArray struct {
	EncodedLength int       `xml:"encodedLength,attr"`
	CvPar         []cvParam `xml:"cvParam"`
	Binary        string    `xml:"binary"`
}

type cvParam struct {
	Accession     string `xml:"accession,attr"`
	Name          string `xml:"name,attr"`
	Value         string `xml:"value,attr"`
	UnitAccession string `xml:"unitAccession,attr"`
}
