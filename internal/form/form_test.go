package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	in := Default()
	assert.Equal(t, "Ethnic Kurtas for women", in.Niche)
	assert.Equal(t, "Patna, Bihar", in.Location)
	assert.NoError(t, in.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr bool
	}{
		{"both set", Input{Niche: "Organic honey", Location: "Pune, Maharashtra"}, false},
		{"padded", Input{Niche: "  Organic honey ", Location: "\tPune "}, false},
		{"empty niche", Input{Location: "Pune"}, true},
		{"empty location", Input{Niche: "Organic honey"}, true},
		{"whitespace niche", Input{Niche: "   ", Location: "Pune"}, true},
		{"whitespace location", Input{Niche: "Organic honey", Location: " \n "}, true},
		{"both empty", Input{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Both fields are required.", verr.Message)
			assert.Equal(t, "Both fields are required.", err.Error())
		})
	}
}

func TestNormalize(t *testing.T) {
	in := Input{Niche: "  Handcrafted leather bags\n", Location: " Jaipur, Rajasthan "}
	assert.Equal(t, Input{Niche: "Handcrafted leather bags", Location: "Jaipur, Rajasthan"}, in.Normalize())
	assert.Equal(t, "  Handcrafted leather bags\n", in.Niche, "receiver is not modified")
}
