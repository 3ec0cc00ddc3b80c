package declare4py

// IndexMap lets a set of named value domains be visited by numeric index,
// the same device alterx's algo.go uses to walk `payloads` by position
// during permutation expansion.
type IndexMap struct {
	values  map[string][]string
	indexes map[int]string
}

// NewIndexMap builds an IndexMap over values, assigning each key a stable
// position for the lifetime of the map.
func NewIndexMap(values map[string][]string) *IndexMap {
	im := &IndexMap{values: values, indexes: map[int]string{}}
	i := 0
	for k := range values {
		im.indexes[i] = k
		i++
	}
	return im
}

func (o *IndexMap) GetNth(n int) []string    { return o.values[o.indexes[n]] }
func (o *IndexMap) Cap() int                 { return len(o.values) }
func (o *IndexMap) KeyAtNth(n int) string    { return o.indexes[n] }

// ClusterBomb walks every combination of values across domains, invoking
// callback once per combination with a name->value assignment. Ported from
// alterx's ClusterBomb (n-th order cross product over an IndexMap),
// repurposed here from "expand subdomain wordlists" to "cross the value
// domains of a model's attributes" for the generator's combinatorial size
// estimate.
func ClusterBomb(domains *IndexMap, callback func(assignment map[string]string), vector []string) {
	if domains.Cap() == 0 {
		return
	}
	if len(vector) == domains.Cap()-1 {
		assignment := map[string]string{}
		for k, v := range vector {
			assignment[domains.KeyAtNth(k)] = v
		}
		index := len(vector)
		for _, elem := range domains.GetNth(index) {
			assignment[domains.KeyAtNth(index)] = elem
			callback(assignment)
		}
		return
	}
	index := len(vector)
	for _, v := range domains.GetNth(index) {
		tmp := append(append([]string(nil), vector...), v)
		ClusterBomb(domains, callback, tmp)
	}
}

// EstimateAttributeCombinations counts the number of distinct
// attribute-value assignments reachable across the given attributes' bound
// domains (enumeration literals, or the integer span of a range scaled by
// its precision). Used by the CLI's `--estimate` flag to warn the operator
// before a combinatorially large solver run is attempted.
func EstimateAttributeCombinations(attrs map[string]*Attribute) int {
	domains := map[string][]string{}
	for name, attr := range attrs {
		domains[name] = attributeDomainSize(attr)
	}
	if len(domains) == 0 {
		return 0
	}
	count := 0
	im := NewIndexMap(domains)
	ClusterBomb(im, func(map[string]string) { count++ }, nil)
	return count
}

// attributeDomainSize returns a placeholder slice whose length is the size
// of attr's value domain, for use as one axis of ClusterBomb's cross
// product (only the length is ever consulted by the caller).
func attributeDomainSize(attr *Attribute) []string {
	switch attr.ValueType {
	case ValueTypeEnumeration:
		return attr.Literals
	case ValueTypeIntegerRange, ValueTypeFloatRange:
		lo := int(attr.Lower * float64(max1(attr.RangePrecision)))
		hi := int(attr.Upper * float64(max1(attr.RangePrecision)))
		n := hi - lo + 1
		if n < 1 {
			n = 1
		}
		return make([]string, n)
	default:
		return []string{""}
	}
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
