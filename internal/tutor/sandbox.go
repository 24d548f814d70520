package tutor

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var keySizePattern = regexp.MustCompile(`\b\d{4}\b`)

// sandboxPrefixes are the first words routed to Simulate instead of the
// model.
var sandboxPrefixes = []string{"openssl", "ls", "dir", "cat", "type", "help", "?"}

// IsSandboxCommand reports whether input looks like a shell command the
// sandbox can answer.
func IsSandboxCommand(input string) bool {
	return slices.Contains(sandboxPrefixes, firstWord(input))
}

const (
	versionOutput = "OpenSSL 3.0.2 15 Mar 2022 (Library: OpenSSL 3.0.2 15 Mar 2022)"

	genrsaOutput = `Generating RSA private key, %s bit long modulus (2 primes)
.......+++++
......................+++++
e is 65537 (0x010001)`

	reqOutput = `You are about to be asked to enter information that will be incorporated
into your certificate request.
What you are about to enter is what is called a Distinguished Name or a DN.
-----
Country Name (2 letter code) [AU]:US
State or Province Name (full name) [Some-State]:California
Locality Name (eg, city) []:San Francisco
Organization Name (eg, company) [Internet Widgits Pty Ltd]:Example Corp
Organizational Unit Name (eg, section) []:IT Department
Common Name (e.g. server FQDN or YOUR name) []:example.com
Email Address []:admin@example.com`

	listOutput = "private.key  certificate.csr  certificate.crt"

	catOutput = `-----BEGIN CERTIFICATE REQUEST-----
MIICvDCCAaQCAQAwdzELMAkGA1UEBhMCVVMxEzARBgNVBAgMCkNhbGlmb3JuaWEx
FjAUBgNVBAcMDVNhbiBGcmFuY2lzY28xFTATBgNVBAoMDEV4YW1wbGUgQ29ycDEU
MBIGA1UECwwLSVQgRGVwYXJ0bWVudDEOMAwGA1UEAwwFZXhhbXBsZTCCASIwDQYJ
...
-----END CERTIFICATE REQUEST-----`

	helpOutput = `Available OpenSSL commands:
  openssl version          - Display OpenSSL version
  openssl genrsa           - Generate RSA private key
  openssl req              - Create certificate request
  openssl x509             - Certificate display and signing

Type 'help <command>' for more information on a specific command.`
)

// Simulate returns canned output for a free-form command. It never fails:
// anything unrecognized is echoed back as executed.
func Simulate(command string) string {
	cmd := strings.ToLower(strings.TrimSpace(command))
	fields := strings.Fields(cmd)
	first := firstWord(cmd)

	switch {
	case strings.Contains(cmd, "openssl version"):
		return versionOutput
	case strings.Contains(cmd, "openssl genrsa"):
		size := "2048"
		if m := keySizePattern.FindString(cmd); m != "" {
			size = m
		}
		return fmt.Sprintf(genrsaOutput, size)
	case strings.Contains(cmd, "openssl req") && slices.Contains(fields, "-new"):
		return reqOutput
	case first == "ls" || first == "dir":
		return listOutput
	case first == "cat" || first == "type":
		return catOutput
	case first == "help" || first == "?":
		return helpOutput
	}
	return "Command executed: " + strings.TrimSpace(command)
}

func firstWord(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

