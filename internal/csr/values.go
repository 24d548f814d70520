package csr

import (
	"fmt"
	"strings"
)

// Values maps a field ID to the collected value.
type Values map[string]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Transcript reproduces what the terminal shows after the request has been
// generated. Fields left empty print nothing after the colon.
func (v Values) Transcript() string {
	var b strings.Builder
	extras := false
	for _, f := range Fields {
		if f.Extra && !extras {
			b.WriteString("\nPlease enter the following 'extra' attributes\n")
			b.WriteString("to be sent with your certificate request\n")
			extras = true
		}
		b.WriteString(f.PromptLine())
		b.WriteString(v[f.ID])
		b.WriteByte('\n')
	}
	b.WriteString("\nGenerating certificate request...\n")
	b.WriteString("Certificate request self-signature ok\n")
	b.WriteString("CSR created successfully and saved to request.csr.")
	return b.String()
}

// Subject renders the request subject as `openssl req -text` prints it.
// Empty fields fall back to their defaults.
func (v Values) Subject() string {
	get := func(id string) string {
		if s := v[id]; s != "" {
			return s
		}
		return fieldDefault(id)
	}
	return fmt.Sprintf("C=%s, ST=%s, L=%s, O=%s, OU=%s, CN=%s/emailAddress=%s",
		get(FieldCountry),
		get(FieldState),
		get(FieldLocality),
		get(FieldOrganization),
		get(FieldOrganizationalUnit),
		get(FieldCommonName),
		get(FieldEmail),
	)
}

// RequestText renders the full `openssl req -text -noout` output for the
// collected subject.
func (v Values) RequestText() string {
	return fmt.Sprintf(requestTemplate, v.Subject())
}

const requestTemplate = `Certificate Request:
    Data:
        Version: 0 (0x0)
        Subject: %s
        Subject Public Key Info:
            Public Key Algorithm: rsaEncryption
                Public-Key: (2048 bit)
                Modulus:
                    00:b4:31:98:0a:c4:bc:62:c1:88:aa:dc:b0:c8:bb:
                    33:35:19:d5:0c:64:b9:3d:41:b2:96:fc:f3:30:b1:
                    ...
                Exponent: 65537 (0x10001)
        Attributes:
            a0:00
    Signature Algorithm: sha256WithRSAEncryption
         84:a8:9a:11:a7:d8:bd:0b:26:7e:52:24:a9:a1:9a:51:23:14:
         ...`
