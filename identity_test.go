package nimsforestkiosk

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParseIdentity(t *testing.T) {
	en := NewPrinter(language.English)

	tests := []struct {
		name        string
		raw         string
		wantID      string
		wantKind    UnitKind
		wantNumber  string
		wantDisplay string
	}{
		{"house with number", "?casa=CASA_123", "CASA_123", KindHouse, "123", "House 123"},
		{"building with number", "?casa=PREDIO_7", "PREDIO_7", KindBuilding, "7", "Building 7"},
		{"building any case", "?casa=Bloco_Predio_A", "Bloco_Predio_A", KindBuilding, "", "Building"},
		{"lowercase building", "casa=predio", "predio", KindBuilding, "", "Building"},
		{"no parameter", "", UnknownUnitID, KindHouse, "", "House"},
		{"empty parameter", "?casa=", UnknownUnitID, KindHouse, "", "House"},
		{"other parameter", "?unit=PREDIO_1", UnknownUnitID, KindHouse, "", "House"},
		{"no underscore", "?casa=123", "123", KindHouse, "", "House"},
		{"trailing underscore", "?casa=CASA_", "CASA_", KindHouse, "", "House"},
		{"letters in suffix", "?casa=CASA_12b", "CASA_12b", KindHouse, "", "House"},
		{"decimal suffix", "?casa=CASA_1.5", "CASA_1.5", KindHouse, "", "House"},
		{"signed suffix", "?casa=CASA_-4", "CASA_-4", KindHouse, "", "House"},
		{"space in suffix", "?casa=CASA_1%202", "CASA_1 2", KindHouse, "", "House"},
		{"last segment wins", "?casa=PREDIO_3_10", "PREDIO_3_10", KindBuilding, "10", "Building 10"},
		{"leading zeros kept", "?casa=CASA_007", "CASA_007", KindHouse, "007", "House 007"},
		{"full url", "https://kiosk.example/visit?casa=PREDIO_42", "PREDIO_42", KindBuilding, "42", "Building 42"},
		{"path only", "/?casa=CASA_9", "CASA_9", KindHouse, "9", "House 9"},
		{"bad escape", "?casa=%zz", UnknownUnitID, KindHouse, "", "House"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ParseIdentityURL(tt.raw)
			assert.Equal(t, tt.wantID, id.ID)
			assert.Equal(t, tt.wantKind, id.Kind)
			assert.Equal(t, tt.wantNumber, id.Number)
			assert.Equal(t, tt.wantDisplay, id.DisplayName(en))
		})
	}
}

func TestParseIdentityNilQuery(t *testing.T) {
	assert.Equal(t, DefaultIdentity(), ParseIdentity(nil))
	assert.Equal(t, DefaultIdentity(), ParseIdentity(url.Values{}))
}

func TestDisplayNameLocalized(t *testing.T) {
	pt := NewPrinter(language.BrazilianPortuguese)

	assert.Equal(t, "Prédio 7", ParseIdentityURL("?casa=PREDIO_7").DisplayName(pt))
	assert.Equal(t, "Casa 123", ParseIdentityURL("?casa=CASA_123").DisplayName(pt))
}

func TestUnitKindString(t *testing.T) {
	assert.Equal(t, "house", KindHouse.String())
	assert.Equal(t, "building", KindBuilding.String())
}
