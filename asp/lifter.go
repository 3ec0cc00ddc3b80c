package asp

import (
	"regexp"
	"sort"

	declare4py "github.com/jonghyeonk/declare4py"
)

var (
	traceAtomRe    = regexp.MustCompile(`^trace\(([^,]+),(\d+)\)$`)
	assignedAtomRe = regexp.MustCompile(`^assigned_value\(([^,]+),([^,]+),(\d+)\)$`)
)

// Clock returns the wall-clock timestamp stamped onto every event of a
// lift pass. The shared per-trace timestamp is a deliberate placeholder,
// not semantically meaningful — exposed here as an injectable function so
// callers (and tests) can pin it.
type Clock func() string

// Lift decodes one solver answer set into a Trace, resolving encoded
// identifiers back to their original names via model.Encoding and
// rescaling FLOAT/FLOAT_RANGE resource values by their attribute's
// RangePrecision. Grounded on asp_generator.py's __pm4py_log.
func Lift(atoms []string, model *declare4py.ParsedModel, name, label string, clock Clock) declare4py.Trace {
	positions := map[int]string{}
	resources := map[int]map[string]string{}

	for _, atom := range atoms {
		if m := traceAtomRe.FindStringSubmatch(atom); m != nil {
			pos := atoiSafe(m[2])
			positions[pos] = model.Encoding.Decode(m[1])
			continue
		}
		if m := assignedAtomRe.FindStringSubmatch(atom); m != nil {
			attrName := model.Encoding.Decode(m[1])
			pos := atoiSafe(m[3])
			value := decodeResourceValue(model, attrName, model.Encoding.Decode(m[2]))
			if resources[pos] == nil {
				resources[pos] = map[string]string{}
			}
			resources[pos][attrName] = value
		}
	}

	ts := ""
	if clock != nil {
		ts = clock()
	}

	positionsSorted := make([]int, 0, len(positions))
	for p := range positions {
		positionsSorted = append(positionsSorted, p)
	}
	sort.Ints(positionsSorted)

	events := make([]declare4py.Event, 0, len(positionsSorted))
	for _, p := range positionsSorted {
		events = append(events, declare4py.Event{
			Activity:  positions[p],
			Position:  p,
			Resources: resources[p],
			Timestamp: ts,
		})
	}

	return declare4py.Trace{Name: name, Label: label, Events: events}
}

// decodeResourceValue rescales a FLOAT/FLOAT_RANGE resource value by its
// attribute's RangePrecision to recover the real number; every other
// value type passes through unchanged.
func decodeResourceValue(model *declare4py.ParsedModel, attrName, rawValue string) string {
	attr, ok := model.Attributes[attrName]
	if !ok || !attr.ValueType.IsFloat() {
		return rawValue
	}
	n := atoiSafe(rawValue)
	precision := attr.RangePrecision
	if precision < 1 {
		precision = 1
	}
	return formatBound(float64(n) / float64(precision))
}

func atoiSafe(s string) int {
	n := 0
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		return -n
	}
	return n
}
