package tutor

import (
	"strings"
	"testing"
)

func TestSimulate(t *testing.T) {
	tests := []struct {
		cmd  string
		want string
	}{
		{"openssl version", versionOutput},
		{"  OpenSSL VERSION -a", versionOutput},
		{"openssl genrsa -out k.pem", "2048 bit long modulus"},
		{"openssl genrsa -out k.pem 4096", "4096 bit long modulus"},
		{"openssl req -new -key k.pem -out r.csr", "Distinguished Name"},
		{"openssl req -text -in r.csr", "Command executed: openssl req -text -in r.csr"},
		{"ls -l", listOutput},
		{"dir", listOutput},
		{"cat request.csr", "BEGIN CERTIFICATE REQUEST"},
		{"type request.csr", "BEGIN CERTIFICATE REQUEST"},
		{"openssl x509 -in certificate.crt", "Command executed: openssl x509 -in certificate.crt"},
		{"help", "Available OpenSSL commands"},
		{"?", "Available OpenSSL commands"},
		{"whoami", "Command executed: whoami"},
	}
	for _, tt := range tests {
		if got := Simulate(tt.cmd); !strings.Contains(got, tt.want) {
			t.Errorf("Simulate(%q) = %q, want it to contain %q", tt.cmd, got, tt.want)
		}
	}
}

func TestIsSandboxCommand(t *testing.T) {
	tests := map[string]bool{
		"openssl version":       true,
		"ls":                    true,
		"Cat file":              true,
		"?":                     true,
		"help me with CSRs":     true,
		"walk me through a CSR": false,
		"lsof":                  false,
		"":                      false,
		"what does openssl do":  false,
	}
	for in, want := range tests {
		if got := IsSandboxCommand(in); got != want {
			t.Errorf("IsSandboxCommand(%q) = %v, want %v", in, got, want)
		}
	}
}
