package autocomplete

import (
	"net/url"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Params is an insertion-ordered set of GET parameters sent with every
// choice request. The zero value is not usable; call NewParams.
type Params struct {
	om *orderedmap.OrderedMap[string, string]
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{om: orderedmap.New[string, string]()}
}

// Set adds or replaces key. Replacing keeps the original position.
func (p *Params) Set(key, value string) {
	p.ensure()
	p.om.Set(key, value)
}

// Get returns the value for key.
func (p *Params) Get(key string) (string, bool) {
	if p == nil || p.om == nil {
		return "", false
	}
	return p.om.Get(key)
}

// Delete removes key, reporting whether it was present.
func (p *Params) Delete(key string) bool {
	if p == nil || p.om == nil {
		return false
	}
	_, ok := p.om.Delete(key)
	return ok
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	if p == nil || p.om == nil {
		return 0
	}
	return p.om.Len()
}

// Keys returns the parameter names in insertion order.
func (p *Params) Keys() []string {
	if p == nil || p.om == nil {
		return nil
	}
	keys := make([]string, 0, p.om.Len())
	for pair := p.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Clone returns an independent copy.
func (p *Params) Clone() *Params {
	out := NewParams()
	if p == nil || p.om == nil {
		return out
	}
	for pair := p.om.Oldest(); pair != nil; pair = pair.Next() {
		out.om.Set(pair.Key, pair.Value)
	}
	return out
}

// Equal reports whether both sets hold the same keys with the same values.
// Order is not significant.
func (p *Params) Equal(other *Params) bool {
	if p == nil || other == nil {
		return p == nil && other == nil
	}
	if p.Len() != other.Len() {
		return false
	}
	if p.om == nil {
		return true
	}
	for pair := p.om.Oldest(); pair != nil; pair = pair.Next() {
		v, ok := other.Get(pair.Key)
		if !ok || v != pair.Value {
			return false
		}
	}
	return true
}

// Encode renders the set as a query string, preserving insertion order.
func (p *Params) Encode() string {
	if p == nil || p.om == nil {
		return ""
	}
	var b strings.Builder
	for pair := p.om.Oldest(); pair != nil; pair = pair.Next() {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}
	return b.String()
}

func (p *Params) ensure() {
	if p.om == nil {
		p.om = orderedmap.New[string, string]()
	}
}
