package main

import "testing"

func TestConnectHint(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":23234", "ssh <name>@localhost -p 23234"},
		{"0.0.0.0:2222", "ssh <name>@localhost -p 2222"},
		{"[::]:2200", "ssh <name>@localhost -p 2200"},
		{"summit.example:4000", "ssh <name>@summit.example -p 4000"},
		{"127.0.0.1:9", "ssh <name>@127.0.0.1 -p 9"},
		{"nohost", "ssh <name>@nohost"},
	}
	for _, tt := range tests {
		if got := connectHint(tt.addr); got != tt.want {
			t.Errorf("connectHint(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
