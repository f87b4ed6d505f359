package fetch

import "testing"

func TestNewDefaultHost(t *testing.T) {
	c := New("")
	if c.Host() != defaultHost {
		t.Errorf("Host() = %q, want %q", c.Host(), defaultHost)
	}

	c = New("example.com:2121")
	if c.Host() != "example.com:2121" {
		t.Errorf("Host() = %q, want example.com:2121", c.Host())
	}
}
