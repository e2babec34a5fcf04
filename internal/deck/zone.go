package deck

// Well-known zone identifiers.
const (
	ZoneMain   = "main"
	ZoneSide   = "side"
	ZoneTokens = "tokens"
)

// zoneOrder fixes the display order of the well-known zones.
var zoneOrder = []string{ZoneMain, ZoneSide, ZoneTokens}

// DisplayName maps a zone identifier to its human-readable name.
// Unknown zones display as their raw identifier.
func DisplayName(zone string) string {
	switch zone {
	case ZoneMain:
		return "main deck"
	case ZoneSide:
		return "sideboard"
	case ZoneTokens:
		return "tokens"
	default:
		return zone
	}
}
