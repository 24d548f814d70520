// Package csr models the Distinguished Name prompt that `openssl req -new`
// walks the learner through.
package csr

// Field identifiers in the order openssl asks for them.
const (
	FieldCountry            = "country"
	FieldState              = "state"
	FieldLocality           = "locality"
	FieldOrganization       = "organization"
	FieldOrganizationalUnit = "organizationalUnit"
	FieldCommonName         = "commonName"
	FieldEmail              = "email"
	FieldPassword           = "password"
	FieldCompanyName        = "companyName"
)

// Field is one prompt line of the request.
type Field struct {
	// ID is the stable key of the collected value.
	ID string

	// Label is the prompt text openssl prints.
	Label string

	// Default is used when the learner submits a blank line.
	Default string

	// Extra marks the "extra attributes" that follow the subject fields.
	Extra bool
}

// Fields lists every prompt in the order it is asked.
var Fields = []Field{
	{ID: FieldCountry, Label: "Country Name (2 letter code)", Default: "US"},
	{ID: FieldState, Label: "State or Province Name (full name)", Default: "California"},
	{ID: FieldLocality, Label: "Locality Name (eg, city)", Default: "San Francisco"},
	{ID: FieldOrganization, Label: "Organization Name (eg, company)", Default: "Example Inc"},
	{ID: FieldOrganizationalUnit, Label: "Organizational Unit Name (eg, section)", Default: "IT Department"},
	{ID: FieldCommonName, Label: "Common Name (e.g. server FQDN or YOUR name)", Default: "example.com"},
	{ID: FieldEmail, Label: "Email Address", Default: "admin@example.com"},
	{ID: FieldPassword, Label: "A challenge password", Extra: true},
	{ID: FieldCompanyName, Label: "An optional company name", Extra: true},
}

// Banner is printed by openssl before the first prompt.
const Banner = `You are about to be asked to enter information that will be incorporated
into your certificate request.
What you are about to enter is what is called a Distinguished Name or a DN.
There are quite a few fields but you can leave some blank
For some fields there will be a default value,
If you enter '.', the field will be left blank.
-----`

// PromptLine renders the question for a field, e.g. "Email Address [admin@example.com]:".
func (f Field) PromptLine() string {
	return f.Label + " [" + f.Default + "]:"
}

func fieldDefault(id string) string {
	for _, f := range Fields {
		if f.ID == id {
			return f.Default
		}
	}
	return ""
}
