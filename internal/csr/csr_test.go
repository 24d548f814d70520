package csr

import (
	"strings"
	"testing"
)

func TestPromptDefaultsAndBlank(t *testing.T) {
	p := NewPrompt()

	f, ok := p.Current()
	if !ok || f.ID != FieldCountry {
		t.Fatalf("first field = %q, %v; want country", f.ID, ok)
	}

	p.Commit("")          // country -> default
	p.Commit("  Oregon ") // state trimmed
	p.Commit(".")         // locality blank
	for !p.Done() {
		p.Commit("")
	}

	v := p.Values()
	if v[FieldCountry] != "US" {
		t.Errorf("country = %q, want US", v[FieldCountry])
	}
	if v[FieldState] != "Oregon" {
		t.Errorf("state = %q, want Oregon", v[FieldState])
	}
	if v[FieldLocality] != "" {
		t.Errorf("locality = %q, want empty", v[FieldLocality])
	}
	if v[FieldPassword] != "" {
		t.Errorf("password = %q, want empty", v[FieldPassword])
	}
	if len(v) != len(Fields) {
		t.Errorf("collected %d values, want %d", len(v), len(Fields))
	}

	if _, ok := p.Current(); ok {
		t.Error("Current should report no field after Done")
	}
	p.Commit("ignored")
	if len(p.Answered()) != len(Fields) {
		t.Errorf("Commit after Done changed answers")
	}
}

func TestPromptValuesIsCopy(t *testing.T) {
	p := NewPrompt()
	p.Commit("DE")
	v := p.Values()
	v[FieldCountry] = "FR"

	if got := p.Values()[FieldCountry]; got != "DE" {
		t.Errorf("prompt value mutated through copy: %q", got)
	}
}

func TestAnswered(t *testing.T) {
	p := NewPrompt()
	p.Commit("GB")
	p.Commit("")

	got := p.Answered()
	if len(got) != 2 {
		t.Fatalf("answered = %d, want 2", len(got))
	}
	if got[0].Field.ID != FieldCountry || got[0].Value != "GB" {
		t.Errorf("answer[0] = %+v", got[0])
	}
	if got[1].Field.ID != FieldState || got[1].Value != "California" {
		t.Errorf("answer[1] = %+v", got[1])
	}
}

func TestTranscript(t *testing.T) {
	v := Values{
		FieldCountry:            "US",
		FieldState:              "California",
		FieldLocality:           "San Francisco",
		FieldOrganization:       "Example Inc",
		FieldOrganizationalUnit: "IT Department",
		FieldCommonName:         "example.com",
		FieldEmail:              "admin@example.com",
	}

	want := strings.Join([]string{
		"Country Name (2 letter code) [US]:US",
		"State or Province Name (full name) [California]:California",
		"Locality Name (eg, city) [San Francisco]:San Francisco",
		"Organization Name (eg, company) [Example Inc]:Example Inc",
		"Organizational Unit Name (eg, section) [IT Department]:IT Department",
		"Common Name (e.g. server FQDN or YOUR name) [example.com]:example.com",
		"Email Address [admin@example.com]:admin@example.com",
		"",
		"Please enter the following 'extra' attributes",
		"to be sent with your certificate request",
		"A challenge password []:",
		"An optional company name []:",
		"",
		"Generating certificate request...",
		"Certificate request self-signature ok",
		"CSR created successfully and saved to request.csr.",
	}, "\n")

	if got := v.Transcript(); got != want {
		t.Errorf("Transcript() =\n%s\nwant\n%s", got, want)
	}
}

func TestSubject(t *testing.T) {
	tests := []struct {
		name string
		v    Values
		want string
	}{
		{
			name: "all defaults",
			v:    nil,
			want: "C=US, ST=California, L=San Francisco, O=Example Inc, OU=IT Department, CN=example.com/emailAddress=admin@example.com",
		},
		{
			name: "custom",
			v: Values{
				FieldCountry:    "DE",
				FieldCommonName: "shop.example.de",
				FieldLocality:   "",
			},
			want: "C=DE, ST=California, L=San Francisco, O=Example Inc, OU=IT Department, CN=shop.example.de/emailAddress=admin@example.com",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Subject(); got != tt.want {
				t.Errorf("Subject() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestTextEmbedsSubject(t *testing.T) {
	v := Values{FieldCommonName: "api.internal"}
	text := v.RequestText()
	if !strings.Contains(text, "Subject: C=US, ST=California, L=San Francisco, O=Example Inc, OU=IT Department, CN=api.internal/emailAddress=admin@example.com") {
		t.Errorf("RequestText missing subject:\n%s", text)
	}
	if !strings.HasPrefix(text, "Certificate Request:") {
		t.Errorf("RequestText has wrong header")
	}
}
