package led

import (
	"fmt"
	"strings"
)

// Order is the wire order of the three color channels, as offsets into an RGB triple.
type Order [3]int

var RGB = Order{0, 1, 2}

// ParseOrder accepts permutations of "RGB" such as "GRB". Empty means RGB.
func ParseOrder(s string) (Order, error) {
	if s == "" {
		return RGB, nil
	}
	s = strings.ToUpper(s)
	if len(s) != 3 {
		return RGB, fmt.Errorf("invalid color order %q", s)
	}
	var o Order
	seen := map[byte]bool{}
	for i := 0; i < 3; i++ {
		switch s[i] {
		case 'R':
			o[i] = 0
		case 'G':
			o[i] = 1
		case 'B':
			o[i] = 2
		default:
			return RGB, fmt.Errorf("invalid color order %q", s)
		}
		if seen[s[i]] {
			return RGB, fmt.Errorf("invalid color order %q", s)
		}
		seen[s[i]] = true
	}
	return o, nil
}

// Apply writes src (RGB triples) into dst in wire order. dst must be len(src).
func (o Order) Apply(dst, src []byte) {
	if o == RGB {
		copy(dst, src)
		return
	}
	for i := 0; i+2 < len(src); i += 3 {
		dst[i+0] = src[i+o[0]]
		dst[i+1] = src[i+o[1]]
		dst[i+2] = src[i+o[2]]
	}
}
