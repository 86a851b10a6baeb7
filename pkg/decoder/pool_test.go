package decoder

import (
	"reflect"
	"testing"
)

func TestParsePool(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []string
	}{
		{
			name: "single range",
			spec: "127.0.10.1-127.0.10.4",
			want: []string{"127.0.10.1", "127.0.10.2", "127.0.10.3", "127.0.10.4"},
		},
		{
			name: "list and range keep order",
			spec: "10.0.0.9, 10.0.0.1-10.0.0.2 ,10.0.0.5",
			want: []string{"10.0.0.9", "10.0.0.1", "10.0.0.2", "10.0.0.5"},
		},
		{
			name: "duplicates dropped",
			spec: "10.0.0.1-10.0.0.3,10.0.0.2,10.0.0.1",
			want: []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"},
		},
		{
			name: "range across octet",
			spec: "10.0.0.254-10.0.1.1",
			want: []string{"10.0.0.254", "10.0.0.255", "10.0.1.0", "10.0.1.1"},
		},
		{
			name: "ipv6",
			spec: "fd00::1-fd00::2",
			want: []string{"fd00::1", "fd00::2"},
		},
		{
			name: "host names",
			spec: "stb-lab-1,decoder.local",
			want: []string{"stb-lab-1", "decoder.local"},
		},
		{
			name: "single address range",
			spec: "10.0.0.7-10.0.0.7",
			want: []string{"10.0.0.7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePool(tt.spec)
			if err != nil {
				t.Fatalf("ParsePool(%q) error = %v", tt.spec, err)
			}
			if got := p.Addresses(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Addresses() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePool_Errors(t *testing.T) {
	tests := []string{
		"",
		" , ",
		"10.0.0.5-10.0.0.1",
		"10.0.0.1-fd00::1",
		"10.0.0.1-nothing",
		"10.0.0.0-10.0.255.255",
	}

	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			if _, err := ParsePool(spec); err == nil {
				t.Errorf("ParsePool(%q) expected error", spec)
			}
		})
	}
}

func TestPool_Contains(t *testing.T) {
	p := NewPool("A", "B", "A")
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
	if !p.Contains("A") || !p.Contains("B") || p.Contains("C") {
		t.Errorf("Contains() wrong for pool %s", p)
	}

	addrs := p.Addresses()
	addrs[0] = "changed"
	if p.Addresses()[0] != "A" {
		t.Error("Addresses() must return a copy")
	}
}

func TestDefaultPool(t *testing.T) {
	p, err := ParsePool(DefaultPool)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 12 {
		t.Errorf("default pool has %d addresses, want 12", p.Len())
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := map[string]string{
		"2001:DB8::1":     "2001:db8::1",
		"2001:db8:0:0::1": "2001:db8::1",
		" 127.0.10.1 ":    "127.0.10.1",
		"stb-lab-1":       "stb-lab-1",
		"Decoder.Local":   "Decoder.Local",
		"":                "",
	}
	for in, want := range tests {
		if got := NormalizeAddress(in); got != want {
			t.Errorf("NormalizeAddress(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPool_ContainsAnySpelling(t *testing.T) {
	p, err := ParsePool("2001:DB8::1, 10.0.0.1")
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "2001:db8::1,10.0.0.1" {
		t.Errorf("String() = %s", p)
	}
	for _, a := range []string{"2001:DB8::1", "2001:db8::1", "2001:db8:0::1", "10.0.0.1"} {
		if !p.Contains(a) {
			t.Errorf("Contains(%q) = false", a)
		}
	}

	if q := NewPool("FD00::2", "fd00::2"); q.Len() != 1 {
		t.Errorf("NewPool kept %d spellings of one address", q.Len())
	}
}
