package signals

import "testing"

func TestURLShape(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want URLSignals
	}{
		{
			name: "plain https link",
			in:   "https://example.com/about",
			want: URLSignals{Scheme: "https", Host: "example.com", TLD: "com", PathLength: 6},
		},
		{
			name: "ip host",
			in:   "http://192.168.0.1/login",
			want: URLSignals{Scheme: "http", Host: "192.168.0.1", PathLength: 6, HasIPHost: true},
		},
		{
			name: "credential-style at symbol",
			in:   "https://paypal.com@evil.example/verify",
			want: URLSignals{Scheme: "https", Host: "evil.example", TLD: "example", PathLength: 7, HasAtSymbol: true},
		},
		{
			name: "hyphen-stuffed host on suspicious tld",
			in:   "https://secure-login-verify-account.example.top/",
			want: URLSignals{Scheme: "https", Host: "secure-login-verify-account.example.top", TLD: "top", PathLength: 1, ManyHyphens: true, SuspiciousTLD: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := URLShape(tc.in)
			if got != tc.want {
				t.Fatalf("URLShape(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRootDomain(t *testing.T) {
	cases := map[string]string{
		"example.com":       "example.com",
		"shop.example.com":  "example.com",
		"a.b.c.example.com": "example.com",
		"localhost":         "localhost",
	}
	for in, want := range cases {
		if got := RootDomain(in); got != want {
			t.Fatalf("RootDomain(%q) = %q, want %q", in, got, want)
		}
	}
}
