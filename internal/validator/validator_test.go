package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	Type             string  `binding:"required,pension_type"`
	ContributionType string  `binding:"required,contribution_type"`
	CurrencyUnit     string  `binding:"omitempty,currency_unit"`
	Ticker           *string `binding:"omitempty,ticker"`
}

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	Register()

	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{"valid", sample{Type: "SIPP", ContributionType: "regular_fixed", CurrencyUnit: "pence", Ticker: strPtr("vwrl")}, false},
		{"managed manual", sample{Type: "managed", ContributionType: "manual"}, false},
		{"bad pension type", sample{Type: "ISA", ContributionType: "manual"}, true},
		{"lowercase sipp", sample{Type: "sipp", ContributionType: "manual"}, true},
		{"bad contribution type", sample{Type: "SIPP", ContributionType: "weekly"}, true},
		{"bad currency unit", sample{Type: "SIPP", ContributionType: "manual", CurrencyUnit: "cents"}, true},
		{"ticker too long", sample{Type: "SIPP", ContributionType: "manual", Ticker: strPtr("TOOLONG")}, true},
		{"ticker with suffix", sample{Type: "SIPP", ContributionType: "manual", Ticker: strPtr("VWRL.L")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidTicker(t *testing.T) {
	for _, s := range []string{"A", "VWRL", "isf", "123AB"} {
		if !ValidTicker(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "ABCDEF", "VW-RL", " VWRL"} {
		if ValidTicker(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
