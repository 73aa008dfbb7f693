package format

import "testing"

func TestLookupKnownFormats(t *testing.T) {
	for _, name := range []string{"date-time", "date", "time", "email", "hostname", "ipv4", "ipv6", "uri", "uri-reference", "regex", "json-pointer", "relative-json-pointer"} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("expected %q to be registered", name)
		}
	}
}

func TestLookupUnknownFormat(t *testing.T) {
	if _, ok := Lookup("not-a-real-format"); ok {
		t.Fatalf("did not expect an unregistered format to be found")
	}
}

func TestIsDateTime(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2018-11-13T20:20:39Z", true},
		{"2018-11-13T20:20:39+01:00", true},
		{"2018-11-13", false},
		{"not a date", false},
	}
	a, _ := Lookup("date-time")
	for _, c := range cases {
		if got := a.Valid(c.in); got != c.want {
			t.Errorf("date-time(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsEmail(t *testing.T) {
	a, _ := Lookup("email")
	cases := []struct {
		in   string
		want bool
	}{
		{"user@example.com", true},
		{"not-an-email", false},
		{"user@", false},
	}
	for _, c := range cases {
		if got := a.Valid(c.in); got != c.want {
			t.Errorf("email(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsHostname(t *testing.T) {
	a, _ := Lookup("hostname")
	cases := []struct {
		in   string
		want bool
	}{
		{"example.com", true},
		{"a.b.c", true},
		{"-bad.com", false},
		{"", false},
	}
	for _, c := range cases {
		if got := a.Valid(c.in); got != c.want {
			t.Errorf("hostname(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsIPv4AndIPv6(t *testing.T) {
	v4, _ := Lookup("ipv4")
	v6, _ := Lookup("ipv6")
	if !v4.Valid("192.168.0.1") {
		t.Error("expected 192.168.0.1 to be a valid ipv4")
	}
	if v4.Valid("::1") {
		t.Error("did not expect ::1 to be a valid ipv4")
	}
	if !v6.Valid("::1") {
		t.Error("expected ::1 to be a valid ipv6")
	}
	if v6.Valid("192.168.0.1") {
		t.Error("did not expect 192.168.0.1 to be a valid ipv6")
	}
}

func TestIsJSONPointer(t *testing.T) {
	a, _ := Lookup("json-pointer")
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"/foo/bar", true},
		{"/foo/~0~1", true},
		{"/foo/~", false},
		{"no-leading-slash", false},
	}
	for _, c := range cases {
		if got := a.Valid(c.in); got != c.want {
			t.Errorf("json-pointer(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRegisterOverride(t *testing.T) {
	Register("always-true-test-format", funcAttribute(func(string) bool { return true }))
	a, ok := Lookup("always-true-test-format")
	if !ok || !a.Valid("anything") {
		t.Fatalf("expected registered override to be found and to accept any string")
	}
}
