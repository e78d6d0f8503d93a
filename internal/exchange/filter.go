package exchange

import "math"

// Tab is the storefront side the user is browsing.
type Tab int

const (
	TabBuy Tab = iota
	TabSell
)

func (t Tab) String() string {
	if t == TabSell {
		return "sell"
	}
	return "buy"
}

// Shows is the counterparty role listed on the tab: buying means trading
// with sellers.
func (t Tab) Shows() Role {
	if t == TabSell {
		return RoleBuyer
	}
	return RoleSeller
}

// ParseTab maps "buy" or "sell" to a Tab.
func ParseTab(s string) (Tab, bool) {
	switch s {
	case "buy":
		return TabBuy, true
	case "sell":
		return TabSell, true
	}
	return TabBuy, false
}

// View is the storefront layout.
type View int

const (
	ViewList View = iota
	ViewMap
)

func (v View) String() string {
	if v == ViewMap {
		return "map"
	}
	return "list"
}

// Filter is the storefront's visible selection.
type Filter struct {
	Tab          Tab
	View         View
	VerifiedOnly bool
}

// Apply narrows list to what the current filter shows: verified only when
// requested, then the tab's role, then, on the map, entries with usable
// coordinates. The input is not modified.
func (f Filter) Apply(list []Counterparty) []Counterparty {
	out := make([]Counterparty, 0, len(list))
	role := f.Tab.Shows()
	for _, cp := range list {
		if f.VerifiedOnly && !cp.IsVerified {
			continue
		}
		if cp.Status != role {
			continue
		}
		if f.View == ViewMap && !ValidCoords(cp.Coords) {
			continue
		}
		out = append(out, cp)
	}
	return out
}

// ValidCoords reports whether c is a plottable latitude/longitude pair.
func ValidCoords(c *Coords) bool {
	if c == nil {
		return false
	}
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
