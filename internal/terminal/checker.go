package terminal

// requirement is the conjunction a lab must satisfy: every command has
// succeeded and every flag is true.
type requirement struct {
	commands []string
	flags    []string
}

// Checker decides whether a lab is finished. Labs without a registered
// requirement are always complete.
type Checker struct {
	table map[string]requirement
}

// NewChecker returns a checker with the requirements of the built-in labs.
func NewChecker() *Checker {
	return &Checker{table: map[string]requirement{
		"install-openssl": {
			commands: []string{"openssl version"},
			flags:    []string{"opensslInstalled"},
		},
		"create-private-key": {
			commands: []string{
				"openssl genrsa -out private_key.pem 2048",
				"chmod 600 private_key.pem",
			},
		},
		"create-csr": {
			commands: []string{
				"openssl req -new -key private_key.pem -out request.csr",
				CSRViewCommand,
			},
		},
		"verify-key-csr": {
			commands: []string{
				"openssl req -noout -modulus -in request.csr | openssl md5",
				"openssl rsa -noout -modulus -in private_key.pem | openssl md5",
				"echo 'Comparing hashes...'",
			},
		},
		"build-chain": {
			commands: []string{
				"cat signed_cert.pem intermediate.pem root.pem > full_chain.pem",
				"openssl verify -CAfile full_chain.pem signed_cert.pem",
				"openssl x509 -in full_chain.pem -text -noout",
			},
		},
		"verify-chain": {
			commands: []string{
				"openssl verify -CAfile full_chain.pem signed_cert.pem",
				`openssl x509 -in signed_cert.pem -text -noout | grep 'Issuer\|Subject'`,
			},
		},
	}}
}

// IsComplete reports whether st satisfies the lab's requirement. It has no
// side effects.
func (c *Checker) IsComplete(moduleID string, st *State) bool {
	req, ok := c.table[moduleID]
	if !ok {
		return true
	}
	for _, cmd := range req.commands {
		if !st.Successful[cmd] {
			return false
		}
	}
	for _, f := range req.flags {
		if !st.Flags[f] {
			return false
		}
	}
	return true
}

// ShouldFire reports whether the completion event must be emitted now:
// the lab is complete and the event has not fired yet in this activation.
func (c *Checker) ShouldFire(moduleID string, st *State, alreadyFired bool) bool {
	return !alreadyFired && c.IsComplete(moduleID, st)
}

// Requirements lists the commands the lab needs, in the order they are
// usually run. Nil for labs without a requirement.
func (c *Checker) Requirements(moduleID string) []string {
	req, ok := c.table[moduleID]
	if !ok {
		return nil
	}
	out := make([]string, len(req.commands))
	copy(out, req.commands)
	return out
}

// Progress counts how many required commands have succeeded.
func (c *Checker) Progress(moduleID string, st *State) (done, total int) {
	req := c.table[moduleID]
	for _, cmd := range req.commands {
		if st.Successful[cmd] {
			done++
		}
	}
	return done, len(req.commands)
}
