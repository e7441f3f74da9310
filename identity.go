package nimsforestkiosk

import (
	"net/url"
	"strings"

	"golang.org/x/text/message"
)

// UnknownUnitID is used when the page address carries no unit.
const UnknownUnitID = "UNKNOWN"

// UnitParam is the query key holding the unit identifier.
const UnitParam = "casa"

// UnitKind is the type of unit being called.
type UnitKind int

const (
	KindHouse UnitKind = iota
	KindBuilding
)

// String returns the lowercase kind name used in JSON and logs.
func (k UnitKind) String() string {
	if k == KindBuilding {
		return "building"
	}
	return "house"
}

// UnitIdentity identifies the unit a kiosk calls. It is computed once per page load.
type UnitIdentity struct {
	ID     string
	Kind   UnitKind
	Number string // numeric suffix of ID, empty if none
}

// DefaultIdentity is the identity used when no unit is given.
func DefaultIdentity() UnitIdentity {
	return UnitIdentity{ID: UnknownUnitID, Kind: KindHouse}
}

// ParseIdentity derives the unit identity from query parameters. It never fails.
func ParseIdentity(query url.Values) UnitIdentity {
	raw := query.Get(UnitParam)
	if raw == "" {
		return DefaultIdentity()
	}

	id := UnitIdentity{ID: raw, Kind: KindHouse}
	if strings.Contains(strings.ToLower(raw), "predio") {
		id.Kind = KindBuilding
	}

	parts := strings.Split(raw, "_")
	if len(parts) > 1 {
		if last := parts[len(parts)-1]; isNumeric(last) {
			id.Number = last
		}
	}
	return id
}

// ParseIdentityURL parses a full URL or a bare query string ("?casa=..." or "casa=...").
// Anything unparsable yields DefaultIdentity.
func ParseIdentityURL(raw string) UnitIdentity {
	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "/") {
		u, err := url.Parse(raw)
		if err != nil {
			return DefaultIdentity()
		}
		return ParseIdentity(u.Query())
	}
	query, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return DefaultIdentity()
	}
	return ParseIdentity(query)
}

// DisplayName returns the localized kind label, followed by the unit number if one was found.
func (u UnitIdentity) DisplayName(p *message.Printer) string {
	name := ThemeFor(u.Kind).Label(p)
	if u.Number != "" {
		name += " " + u.Number
	}
	return name
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
