package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveShipName(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "labelled",
			text: "SAFETY MANAGEMENT CERTIFICATE\nName of Ship: Northern Star\nIMO Number: 9312345",
			want: "Northern Star",
		},
		{
			name: "ship name label",
			text: "Ship name: Pacific Dawn\nFlag: Panama",
			want: "Pacific Dawn",
		},
		{
			name: "possessive label",
			text: "Vessel's Name - Ocean Breeze",
			want: "Ocean Breeze",
		},
		{
			name: "mv prefix",
			text: "This certificate is issued to M/V Sea Wanderer under the provisions of SOLAS.",
			want: "Sea Wanderer",
		},
		{
			name: "mv with dots",
			text: "Inspection of M.V. Baltic Trader completed without deficiencies.",
			want: "Baltic Trader",
		},
		{
			name: "flowing summary text",
			text: "Safety Management Certificate. Ship name: Northern Star. Issued 2024 by the flag administration.",
			want: "Northern Star",
		},
		{
			name: "trailing imo on same line",
			text: "Name of vessel: Atlantic Carrier IMO 9418366",
			want: "Atlantic Carrier",
		},
		{
			name: "no ship name",
			text: "Port agency invoice. Services rendered during call at Rotterdam.",
			want: "",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveShipName(tc.text))
		})
	}
}

func TestCleanShipName(t *testing.T) {
	assert.Equal(t, "Northern Star", cleanShipName("  Northern   Star  "))
	assert.Equal(t, "Northern Star", cleanShipName("Northern Star Flag: Norway"))
	assert.Equal(t, "", cleanShipName("N"))
	assert.Equal(t, "", cleanShipName(" .:- "))
}
