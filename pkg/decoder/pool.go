package decoder

import (
	"fmt"
	"net/netip"
	"strings"
)

// DefaultPool is the address block polled by the reference deployment.
const DefaultPool = "127.0.10.1-127.0.10.12"

const maxRangeSize = 4096

// Pool is the ordered set of decoder addresses the service is willing to
// poll.
type Pool struct {
	addresses []string
	index     map[string]struct{}
}

// NewPool builds a pool from explicit addresses, dropping duplicates and
// keeping the first occurrence.
func NewPool(addresses ...string) Pool {
	p := Pool{
		addresses: make([]string, 0, len(addresses)),
		index:     make(map[string]struct{}, len(addresses)),
	}
	for _, a := range addresses {
		p.add(a)
	}
	return p
}

// NormalizeAddress returns the canonical text of an IP literal, e.g.
// "2001:DB8::1" becomes "2001:db8::1". Anything else is returned trimmed but
// otherwise unchanged so host names still match.
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if addr, err := netip.ParseAddr(address); err == nil {
		return addr.String()
	}
	return address
}

// ParsePool parses a comma separated list of addresses and inclusive ranges,
// e.g. "10.0.0.1, 10.0.0.5-10.0.0.9". Entries that are not IP literals are
// kept verbatim so host names can be pooled too.
func ParsePool(spec string) (Pool, error) {
	p := NewPool()

	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		from, to, isRange := strings.Cut(entry, "-")
		if isRange && !looksLikeRange(from, to) {
			// a host name such as "stb-lab-1"
			isRange = false
		}
		if !isRange {
			p.add(entry)
			continue
		}

		addrs, err := expandRange(strings.TrimSpace(from), strings.TrimSpace(to))
		if err != nil {
			return Pool{}, err
		}
		for _, a := range addrs {
			p.add(a)
		}
	}

	if p.Len() == 0 {
		return Pool{}, fmt.Errorf("address pool %q is empty", spec)
	}

	return p, nil
}

func looksLikeRange(from, to string) bool {
	_, errFrom := netip.ParseAddr(strings.TrimSpace(from))
	_, errTo := netip.ParseAddr(strings.TrimSpace(to))
	return errFrom == nil || errTo == nil
}

func expandRange(from, to string) ([]string, error) {
	start, err := netip.ParseAddr(from)
	if err != nil {
		return nil, fmt.Errorf("invalid range start %q: %s", from, err)
	}
	end, err := netip.ParseAddr(to)
	if err != nil {
		return nil, fmt.Errorf("invalid range end %q: %s", to, err)
	}
	if start.Is4() != end.Is4() {
		return nil, fmt.Errorf("range %s-%s mixes address families", start, end)
	}
	if end.Less(start) {
		return nil, fmt.Errorf("range %s-%s ends before it starts", start, end)
	}

	out := make([]string, 0)
	for a := start; ; a = a.Next() {
		if len(out) == maxRangeSize {
			return nil, fmt.Errorf("range %s-%s exceeds %d addresses", start, end, maxRangeSize)
		}
		out = append(out, a.String())
		if a == end {
			break
		}
	}

	return out, nil
}

func (p *Pool) add(address string) {
	address = NormalizeAddress(address)
	if p.index == nil {
		p.index = make(map[string]struct{})
	}
	if _, ok := p.index[address]; ok {
		return
	}
	p.index[address] = struct{}{}
	p.addresses = append(p.addresses, address)
}

// Addresses returns the pool in iteration order.
func (p Pool) Addresses() []string {
	out := make([]string, len(p.addresses))
	copy(out, p.addresses)
	return out
}

func (p Pool) Contains(address string) bool {
	_, ok := p.index[NormalizeAddress(address)]
	return ok
}

func (p Pool) Len() int {
	return len(p.addresses)
}

func (p Pool) String() string {
	return strings.Join(p.addresses, ",")
}
