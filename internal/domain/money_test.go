package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "two decimal places", raw: "10.50", want: "10.50"},
		{name: "one decimal place", raw: "10.5", want: "10.50"},
		{name: "integer", raw: "10", want: "10.00"},
		{name: "zero", raw: "0", want: "0.00"},
		{name: "three decimal places rejected", raw: "10.005", wantErr: true},
		{name: "trailing zero beyond scale rejected", raw: "10.500", wantErr: true},
		{name: "many decimal places rejected", raw: "0.0001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := decimal.NewFromString(tt.raw)
			if err != nil {
				t.Fatalf("bad test input: %v", err)
			}

			got, err := NormalizeAmount(raw)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("expected ErrInvalidAmount, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.StringFixed(MoneyScale) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.StringFixed(MoneyScale))
			}
		})
	}
}

func TestNormalizePositiveAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "positive", raw: "0.01"},
		{name: "zero rejected", raw: "0", wantErr: true},
		{name: "negative rejected", raw: "-5.00", wantErr: true},
		{name: "over-precise rejected", raw: "1.999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := decimal.NewFromString(tt.raw)
			if err != nil {
				t.Fatalf("bad test input: %v", err)
			}

			_, err = NormalizePositiveAmount(raw)
			if tt.wantErr && !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizeBalance(t *testing.T) {
	if _, err := NormalizeBalance(decimal.Zero); err != nil {
		t.Fatalf("zero balance should be valid: %v", err)
	}

	neg := decimal.NewFromInt(-1)
	if _, err := NormalizeBalance(neg); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative balance, got %v", err)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "70", want: "$70.00"},
		{raw: "30.5", want: "$30.50"},
		{raw: "0", want: "$0.00"},
		{raw: "1234.56", want: "$1234.56"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.raw)
		if err != nil {
			t.Fatalf("bad test input: %v", err)
		}
		if got := FormatMoney(d); got != tt.want {
			t.Errorf("FormatMoney(%s) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}
