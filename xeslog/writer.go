// Package xeslog writes generated traces to a minimal XES-compatible event
// stream: a thin boundary layer outside the Declare/ASP core, so the
// writer here honors only a minimal set of attributes and nothing more.
package xeslog

import (
	"encoding/xml"
	"io"
	"sort"

	declare4py "github.com/jonghyeonk/declare4py"
)

type xesLog struct {
	XMLName xml.Name  `xml:"log"`
	Traces  []xesTrace `xml:"trace"`
}

type xesTrace struct {
	Attrs  []xesString `xml:",any"`
	Events []xesEvent  `xml:"event"`
}

type xesEvent struct {
	Attrs []xesAttr `xml:",any"`
}

type xesString struct {
	XMLName xml.Name `xml:"string"`
	Key     string   `xml:"key,attr"`
	Value   string   `xml:"value,attr"`
}

type xesAttr struct {
	XMLName xml.Name
	Key     string `xml:"key,attr"`
	Value   string `xml:"value,attr"`
}

// Write renders traces as an XES-shaped XML document to w. Minimum
// attributes: per trace `concept:name` (unique id) and
// `label` ∈ {positive, negative}; per event `concept:name`,
// `lifecycle:transition = "complete"`, and `time:timestamp`. Any further
// per-event resource attribute is rendered as an additional <string>
// element keyed by its own name.
func Write(w io.Writer, traces []declare4py.Trace) error {
	log := xesLog{Traces: make([]xesTrace, 0, len(traces))}
	for _, t := range traces {
		xt := xesTrace{
			Attrs: []xesString{
				{Key: "concept:name", Value: t.Name},
				{Key: "label", Value: t.Label},
			},
			Events: make([]xesEvent, 0, len(t.Events)),
		}
		for _, e := range t.Events {
			xe := xesEvent{Attrs: []xesAttr{
				{XMLName: xml.Name{Local: "string"}, Key: "concept:name", Value: e.Activity},
				{XMLName: xml.Name{Local: "string"}, Key: "lifecycle:transition", Value: "complete"},
				{XMLName: xml.Name{Local: "date"}, Key: "time:timestamp", Value: e.Timestamp},
			}}
			for _, name := range sortedResourceNames(e.Resources) {
				xe.Attrs = append(xe.Attrs, xesAttr{XMLName: xml.Name{Local: "string"}, Key: name, Value: e.Resources[name]})
			}
			xt.Events = append(xt.Events, xe)
		}
		log.Traces = append(log.Traces, xt)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(log); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func sortedResourceNames(resources map[string]string) []string {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
