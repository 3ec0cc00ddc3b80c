package xeslog

import (
	"encoding/xml"
	"io"

	declare4py "github.com/jonghyeonk/declare4py"
)

// Read parses an XES-shaped log previously produced by Write back into
// Traces, so the CLI's check mode can round-trip a generated log without
// depending on a full XES implementation.
// The trace keys concept:name and label and the event keys concept:name and
// time:timestamp are pulled into their dedicated fields; the event key
// lifecycle:transition is dropped; every other per-event element becomes a
// resource.
func Read(r io.Reader) ([]declare4py.Trace, error) {
	var log xesLog
	if err := xml.NewDecoder(r).Decode(&log); err != nil {
		return nil, err
	}

	traces := make([]declare4py.Trace, 0, len(log.Traces))
	for _, xt := range log.Traces {
		trace := declare4py.Trace{}
		for _, a := range xt.Attrs {
			switch a.Key {
			case "concept:name":
				trace.Name = a.Value
			case "label":
				trace.Label = a.Value
			}
		}
		for i, xe := range xt.Events {
			event := declare4py.Event{Position: i + 1, Resources: map[string]string{}}
			for _, a := range xe.Attrs {
				switch a.Key {
				case "concept:name":
					event.Activity = a.Value
				case "lifecycle:transition":
					// boundary metadata only; not modeled on Event.
				case "time:timestamp":
					event.Timestamp = a.Value
				default:
					event.Resources[a.Key] = a.Value
				}
			}
			trace.Events = append(trace.Events, event)
		}
		traces = append(traces, trace)
	}
	return traces, nil
}
