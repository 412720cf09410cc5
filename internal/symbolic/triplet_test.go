package symbolic

import (
	"errors"
	"testing"

	"github.com/angelina-gm1999/zados/internal/state"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		tr   Triplet
		want string
	}{
		{
			name: "ungated",
			tr:   Triplet{NT: NTDopamine, Receptor: ReceptorD1, Modifier: ModUpDensity},
			want: "DA→D1:↑density",
		},
		{
			name: "gamma gated",
			tr:   Triplet{NT: NTGlutamate, Receptor: ReceptorNMDA, Modifier: ModUpAffinity, Gate: state.BandGamma},
			want: "gamma{GLU→NMDA:↑affinity}",
		},
		{
			name: "single segment receptor",
			tr:   Triplet{NT: NTOxytocin, Receptor: ReceptorOXTR, Modifier: ModUpregulated},
			want: "OXT→OXTR:upregulated",
		},
		{
			name: "serotonin short prefix",
			tr:   Triplet{NT: NTSerotonin, Receptor: Receptor5HT1A, Modifier: ModDownSensitivity, Gate: state.BandTheta},
			want: "theta{SEROTONIN→1A:↓sensitivity}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tr, err := Parse("DA→D1:↑density")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Triplet{NT: NTDopamine, Receptor: ReceptorD1, Modifier: ModUpDensity}
	if tr != want {
		t.Errorf("Parse = %+v, want %+v", tr, want)
	}
	if tr.Gate != "" {
		t.Errorf("ungated triplet has gate %q", tr.Gate)
	}

	tr, err = Parse("gamma{GLU→NMDA:↑affinity}")
	if err != nil {
		t.Fatalf("Parse gated: %v", err)
	}
	want = Triplet{NT: NTGlutamate, Receptor: ReceptorNMDA, Modifier: ModUpAffinity, Gate: state.BandGamma}
	if tr != want {
		t.Errorf("Parse gated = %+v, want %+v", tr, want)
	}
}

func TestParse_ToleratesWhitespace(t *testing.T) {
	tr, err := Parse("  DA → D1 : ↑density  ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Triplet{NT: NTDopamine, Receptor: ReceptorD1, Modifier: ModUpDensity}
	if tr != want {
		t.Errorf("Parse = %+v, want %+v", tr, want)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{name: "empty", encoded: "", wantErr: ErrInvalidTriplet},
		{name: "no arrow", encoded: "DA:↑density", wantErr: ErrInvalidTriplet},
		{name: "no modifier separator", encoded: "DA→D1", wantErr: ErrInvalidTriplet},
		{name: "unbalanced gate", encoded: "gamma{DA→D1:↑density", wantErr: ErrInvalidTriplet},
		{name: "unknown neurotransmitter", encoded: "XX→D1:↑density", wantErr: ErrUnknownTag},
		{name: "unknown receptor", encoded: "DA→D99:↑density", wantErr: ErrUnknownTag},
		{name: "unknown modifier", encoded: "DA→D1:sideways", wantErr: ErrUnknownTag},
		{name: "unknown gate band", encoded: "sigma{DA→D1:↑density}", wantErr: state.ErrUnknownBand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.encoded); !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) err = %v, want %v", tt.encoded, err, tt.wantErr)
			}
		})
	}
}

// Every combination of vocabulary tags, gated and ungated, must survive
// an encode/parse round trip unchanged.
func TestRoundTrip_AllCombinations(t *testing.T) {
	gates := append([]state.Band{""}, state.Bands()...)

	var n int
	for _, nt := range NeurotransmitterTags() {
		for _, rec := range ReceptorTags() {
			for _, mod := range ModifierTags() {
				for _, gate := range gates {
					in := Triplet{NT: nt, Receptor: rec, Modifier: mod, Gate: gate}
					out, err := Parse(in.Encode())
					if err != nil {
						t.Fatalf("round trip of %+v (%q): %v", in, in.Encode(), err)
					}
					if out != in {
						t.Fatalf("round trip of %q = %+v, want %+v", in.Encode(), out, in)
					}
					n++
				}
			}
		}
	}

	if want := 12 * 26 * 14 * 6; n != want {
		t.Errorf("covered %d combinations, want %d", n, want)
	}
}
