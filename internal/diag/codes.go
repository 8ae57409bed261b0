package diag

import "fmt"

// Code identifies a kind of diagnostic. The thousands digit picks the
// family shown in the ID prefix.
type Code uint16

const (
	UnknownCode Code = 0

	// tree-sitter parsing
	ParseInfo   Code = 1000
	ParseFailed Code = 1001

	// conversion
	CnvInfo                 Code = 3000
	CnvUnsupportedConstruct Code = 3001
	CnvUnsupportedKind      Code = 3002

	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOCacheError     Code = 4003

	// post-formatting
	FmtInfo        Code = 5000
	FmtLineTooLong Code = 5001

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeTitles = map[Code]string{
	UnknownCode:             "Unknown error",
	ParseInfo:               "Parser information",
	ParseFailed:             "C++ parse failed",
	CnvInfo:                 "Conversion information",
	CnvUnsupportedConstruct: "Unsupported construct",
	CnvUnsupportedKind:      "Node kind has no renderer",
	IOLoadFileError:         "I/O load file error",
	IOWriteFileError:        "I/O write file error",
	IOCacheError:            "Conversion cache error",
	FmtInfo:                 "Formatter information",
	FmtLineTooLong:          "Line exceeds configured width",
	ObsInfo:                 "Observability information",
	ObsTimings:              "Pipeline timings",
}

// families indexes ID prefixes by thousands; "" means no family.
var families = [...]string{1: "PAR", 3: "CNV", 4: "IO", 5: "FMT", 6: "OBS"}

// ID is the stable printed form, e.g. CNV3001.
func (c Code) ID() string {
	if fam := int(c) / 1000; fam < len(families) && families[fam] != "" {
		return fmt.Sprintf("%s%04d", families[fam], int(c))
	}
	return "E0000"
}

func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
