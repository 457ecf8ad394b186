package clashreport // import "kastelo.dev/clashreport"

// Defaults used when the source XML omits a field. Extraction never fails
// on a missing name; it falls back to these.
const (
	UnknownTest  = "Unknown Test"
	UnknownGroup = "None"
)

// Record is one normalized clash entry from a coordination report.
// Records keep the order they appear in the source document.
type Record struct {
	TestName  string
	GroupName string
	ClashName string
	GUID      string
	Distance  string
	Position  *Position
	ImageHref string
	Item1     string
	Item2     string
}

// Position is a clash point. Nil on a Record means the source had no
// parseable pos3f element.
type Position struct {
	X, Y, Z float64
}
