package terminal

import (
	"strings"
	"testing"

	"github.com/abhisek/certlab/internal/catalog"
	"github.com/abhisek/certlab/internal/csr"
)

func newTestResolver() *Resolver {
	return NewResolver(catalog.Default())
}

func allInputs(t *testing.T, moduleID string) []string {
	t.Helper()
	mod, ok := catalog.Default().Module(moduleID)
	if !ok {
		t.Fatalf("module %q missing", moduleID)
	}
	var out []string
	for _, c := range mod.Commands {
		out = append(out, c.Value)
	}
	return append(out, "help", "?", "rm -rf /", "openssl", "ls", "OPENSSL VERSION")
}

func TestVersionBeforeInstall(t *testing.T) {
	r := newTestResolver()
	c := NewChecker()
	st := NewState()

	res := r.Resolve("install-openssl", "openssl version", st)

	if res.Kind != KindExecuted {
		t.Fatalf("kind = %v, want executed", res.Kind)
	}
	if !strings.Contains(res.Output, "command not found") {
		t.Errorf("output = %q, want failure text", res.Output)
	}
	if res.Successful {
		t.Error("version before install should not be successful")
	}
	if !st.Executed["openssl version"] {
		t.Error("failed command should still be executed")
	}
	if st.Successful["openssl version"] {
		t.Error("failed command should not be successful")
	}
	if c.IsComplete("install-openssl", st) {
		t.Error("module should not be complete")
	}
}

func TestInstallThenVersion(t *testing.T) {
	r := newTestResolver()
	c := NewChecker()
	st := NewState()

	r.Resolve("install-openssl", "apt-get install openssl", st)
	res := r.Resolve("install-openssl", "openssl version", st)

	if !res.Successful || res.Output != "OpenSSL 1.1.1g  21 Apr 2020" {
		t.Errorf("version = %q (successful=%v)", res.Output, res.Successful)
	}
	if !res.Completes {
		t.Error("openssl version should be the finishing command")
	}
	if !c.IsComplete("install-openssl", st) {
		t.Error("module should be complete")
	}
}

func TestReinstallIsIdempotent(t *testing.T) {
	r := newTestResolver()
	st := NewState()

	first := r.Resolve("install-openssl", "apt-get install openssl", st)
	if !strings.HasSuffix(first.Output, "OpenSSL installed successfully.") {
		t.Errorf("first install output = %q", first.Output)
	}

	second := r.Resolve("install-openssl", "apt-get install openssl", st)
	if second.Output != "OpenSSL is already installed." {
		t.Errorf("second install output = %q", second.Output)
	}
	if !second.Successful {
		t.Error("already-installed notice should be successful")
	}
}

func TestChainOrder(t *testing.T) {
	r := newTestResolver()
	st := NewState()

	wrong := r.Resolve("build-chain", "cat intermediate.pem signed_cert.pem root.pem > full_chain.pem", st)
	if wrong.Successful {
		t.Errorf("wrong order should fail: %q", wrong.Output)
	}
	if st.Flags["chainFileCreated"] {
		t.Fatal("wrong order must not set chainFileCreated")
	}

	right := r.Resolve("build-chain", "cat signed_cert.pem intermediate.pem root.pem > full_chain.pem", st)
	if !right.Successful {
		t.Errorf("right order should succeed: %q", right.Output)
	}
	if !st.Flags["chainFileCreated"] {
		t.Error("right order should set chainFileCreated")
	}
}

func TestHelpIsInert(t *testing.T) {
	r := newTestResolver()

	for _, mod := range catalog.Default().Modules() {
		t.Run(mod.ID, func(t *testing.T) {
			st := NewState()
			for _, input := range []string{"help", "HELP", " ? "} {
				before := st.Clone()
				res := r.Resolve(mod.ID, input, st)
				if res.Kind != KindHelp {
					t.Errorf("%q kind = %v, want help", input, res.Kind)
				}
				if res.Output != mod.Help {
					t.Errorf("%q output = %q, want module help", input, res.Output)
				}
				assertSameState(t, before, st)
			}
		})
	}

	// Help also leaves a partially completed state untouched.
	st := NewState()
	r.Resolve("install-openssl", "brew install openssl", st)
	before := st.Clone()
	r.Resolve("install-openssl", "help", st)
	assertSameState(t, before, st)
}

func TestHelpPrefersCatalogCommand(t *testing.T) {
	c, err := catalog.Parse([]byte(`
version: v1.0.0
modules:
  - id: demo
    title: Demo
    help: module help
    commands:
      - {value: help, label: Help, response: command help}
      - {value: run, label: Run, response: ok, completesStep: true}
  - id: bare
    title: Bare
    commands:
      - {value: run, label: Run, response: ok, completesStep: true}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := NewResolver(c)

	if got := r.Resolve("demo", "help", NewState()).Output; got != "command help" {
		t.Errorf("demo help = %q", got)
	}
	if got := r.Resolve("bare", "help", NewState()).Output; got != NoHelpMessage {
		t.Errorf("bare help = %q", got)
	}
	if got := r.Resolve("missing", "?", NewState()).Output; got != NoHelpMessage {
		t.Errorf("missing module help = %q", got)
	}
}

func TestSuccessImpliesExecuted(t *testing.T) {
	r := newTestResolver()
	for _, mod := range catalog.Default().Modules() {
		st := NewState()
		inputs := allInputs(t, mod.ID)
		// Two passes so rules depending on earlier success are exercised.
		for range 2 {
			for _, in := range inputs {
				r.Resolve(mod.ID, in, st)
				for cmd := range st.Successful {
					if !st.Executed[cmd] {
						t.Fatalf("%s: %q successful but not executed", mod.ID, cmd)
					}
				}
			}
		}
	}
}

func TestFlagMonotonicity(t *testing.T) {
	r := newTestResolver()
	for _, mod := range catalog.Default().Modules() {
		st := NewState()
		seen := map[string]bool{}
		inputs := allInputs(t, mod.ID)
		for i := range 3 * len(inputs) {
			// Walk the inputs in a shifting order.
			in := inputs[(i*7)%len(inputs)]
			r.Resolve(mod.ID, in, st)
			for f := range seen {
				if !st.Flags[f] {
					t.Fatalf("%s: flag %q cleared after %q", mod.ID, f, in)
				}
			}
			for f, v := range st.Flags {
				if v {
					seen[f] = true
				}
			}
		}
	}
}

func TestFirstRuleWins(t *testing.T) {
	c, err := catalog.Parse([]byte(`
version: v1.0.0
modules:
  - id: demo
    title: Demo
    commands:
      - value: prep
        label: Prep
        response: prepared
        setsState: {ready: true, warm: true}
      - value: run
        label: Run
        response: default
        completesStep: true
        conditionalResponses:
          - requires: [ready]
            response: first
          - requires: [warm]
            response: second
          - requires: [prep]
            response: third
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := NewResolver(c)
	st := NewState()

	if got := r.Resolve("demo", "run", st).Output; got != "default" {
		t.Errorf("before prep = %q, want default", got)
	}
	r.Resolve("demo", "prep", st)
	if got := r.Resolve("demo", "run", st).Output; got != "first" {
		t.Errorf("after prep = %q, want first", got)
	}
}

func TestRequiresAcceptsSuccessfulCommand(t *testing.T) {
	c, err := catalog.Parse([]byte(`
version: v1.0.0
modules:
  - id: demo
    title: Demo
    commands:
      - {value: build, label: Build, response: built}
      - value: deploy
        label: Deploy
        response: "Error: nothing to deploy"
        completesStep: true
        conditionalResponses:
          - requires: [build]
            response: deployed
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := NewResolver(c)
	st := NewState()

	if res := r.Resolve("demo", "deploy", st); res.Successful {
		t.Errorf("deploy before build should fail, got %q", res.Output)
	}
	r.Resolve("demo", "build", st)
	res := r.Resolve("demo", "deploy", st)
	if res.Output != "deployed" || !res.Successful {
		t.Errorf("deploy after build = %q (successful=%v)", res.Output, res.Successful)
	}
}

func TestRequiresNotAllNames(t *testing.T) {
	r := newTestResolver()
	st := NewState()
	const compare = "echo 'Comparing hashes...'"

	if got := r.Resolve("verify-key-csr", compare, st).Output; !strings.Contains(got, "Tip: You need to extract") {
		t.Errorf("compare before hashing = %q", got)
	}

	r.Resolve("verify-key-csr", "openssl req -noout -modulus -in request.csr | openssl md5", st)
	if got := r.Resolve("verify-key-csr", compare, st).Output; !strings.Contains(got, "The hashes match!") {
		t.Errorf("compare after one hash = %q", got)
	}
}

func TestUnknownIsInert(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		module string
		input  string
		kind   Kind
	}{
		{"install-openssl", "pip install openssl", KindSuggested},
		{"install-openssl", "Brew Install OpenSSL", KindSuggested},
		{"install-openssl", "unknown", KindUnknown},
		{"create-private-key", "rm private_key.pem", KindUnknown},
		{"create-private-key", "openssl genrsa -out private_key.pem 4096", KindSuggested},
		{"build-chain", "cat root.pem", KindSuggested},
		{"nope", "openssl version", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			st := NewState()
			r.Resolve("install-openssl", "brew install openssl", st)
			before := st.Clone()

			res := r.Resolve(tt.module, tt.input, st)
			if res.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", res.Kind, tt.kind)
			}
			if res.Command != nil {
				t.Error("no command should be attached")
			}
			assertSameState(t, before, st)
		})
	}
}

func TestSuggestionMessage(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve("install-openssl", "sudo apt-get install openssl", NewState())

	want := "⚠️  Command not recognized. Did you mean: apt-get install openssl?\n\n💡 TIP: Type 'help' for available commands."
	if res.Output != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}
	if res.Suggestion != "apt-get install openssl" {
		t.Errorf("suggestion = %q", res.Suggestion)
	}
}

func TestNotFoundMessage(t *testing.T) {
	r := newTestResolver()
	res := r.Resolve("create-csr", "vim request.csr", NewState())

	want := "❌ Command not found: vim request.csr\n\n💡 TIP: Type 'help' to see available commands."
	if res.Output != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}
}

func TestInteractiveDefersExecution(t *testing.T) {
	r := newTestResolver()
	st := NewState()
	const create = "openssl req -new -key private_key.pem -out request.csr"

	res := r.Resolve("create-csr", create, st)
	if res.Kind != KindInteractive || res.Command == nil || res.Command.Value != create {
		t.Fatalf("result = %+v, want interactive", res)
	}
	if res.Output != "" {
		t.Errorf("interactive output = %q, want empty", res.Output)
	}
	if st.Executed[create] || st.Flags["csrExists"] {
		t.Error("interactive command must not mutate state before the prompt finishes")
	}
}

func TestResolveInteractive(t *testing.T) {
	r := newTestResolver()
	st := NewState()
	const create = "openssl req -new -key private_key.pem -out request.csr"

	values := csr.Values{csr.FieldCountry: "NL", csr.FieldCommonName: "bank.example.nl"}
	res := r.ResolveInteractive("create-csr", create, values, st)

	if res.Kind != KindExecuted || !res.Successful {
		t.Fatalf("result = %+v", res)
	}
	if res.Output != values.Transcript() {
		t.Errorf("output is not the prompt transcript")
	}
	if !st.Executed[create] || !st.Successful[create] {
		t.Error("interactive command should be executed and successful")
	}
	if !st.Flags["csrExists"] {
		t.Error("csrExists should be set")
	}

	values[csr.FieldCountry] = "BE"
	if st.CSR[csr.FieldCountry] != "NL" {
		t.Error("state must keep its own copy of the values")
	}

	view := r.Resolve("create-csr", CSRViewCommand, st)
	if !strings.Contains(view.Output, "Subject: C=NL, ST=California, L=San Francisco, O=Example Inc, OU=IT Department, CN=bank.example.nl/emailAddress=admin@example.com") {
		t.Errorf("view does not use collected subject:\n%s", view.Output)
	}
	if !view.Successful || !view.Completes {
		t.Errorf("view result = %+v", view)
	}
}

func TestResolveInteractiveRejectsPlainCommand(t *testing.T) {
	r := newTestResolver()
	st := NewState()

	res := r.ResolveInteractive("create-csr", CSRViewCommand, nil, st)
	if res.Kind != KindUnknown {
		t.Errorf("kind = %v, want unknown", res.Kind)
	}
	assertSameState(t, NewState(), st)
}

func TestViewWithoutCSRUsesRules(t *testing.T) {
	r := newTestResolver()
	st := NewState()

	res := r.Resolve("create-csr", CSRViewCommand, st)
	if res.Successful || !strings.Contains(res.Output, "Cannot open request.csr") {
		t.Errorf("view without CSR = %q (successful=%v)", res.Output, res.Successful)
	}
}

func TestCustomOverride(t *testing.T) {
	r := newTestResolver()
	r.Override("ls -l private_key.pem", func(st *State) (string, bool) {
		return "override", st.Flags["keyExists"]
	})
	st := NewState()

	// Without the key the override declines and the rule applies.
	if got := r.Resolve("create-private-key", "ls -l private_key.pem", st).Output; !strings.Contains(got, "No such file") {
		t.Errorf("before key = %q", got)
	}
	r.Resolve("create-private-key", "openssl genrsa -out private_key.pem 2048", st)
	if got := r.Resolve("create-private-key", "ls -l private_key.pem", st).Output; got != "override" {
		t.Errorf("after key = %q, want override", got)
	}
}

func TestRegenerateKeyWarningIsSuccess(t *testing.T) {
	r := newTestResolver()
	st := NewState()
	const gen = "openssl genrsa -out private_key.pem 2048"

	r.Resolve("create-private-key", gen, st)
	res := r.Resolve("create-private-key", gen, st)
	if !strings.HasPrefix(res.Output, "⚠️ Warning: Overwriting") {
		t.Errorf("regenerate output = %q", res.Output)
	}
	if !res.Successful {
		t.Error("warning should still be a success")
	}
}

func TestIsFailure(t *testing.T) {
	tests := []struct {
		out  string
		want bool
	}{
		{"ls: x: No such file or directory", true},
		{"Error: nope", true},
		{"bash: foo: command not found", true},
		{"❌ broken", true},
		{"⚠️ Warning: careful", false},
		{"error: lowercase does not count", false},
		{"signed_cert.pem: OK", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsFailure(tt.out); got != tt.want {
			t.Errorf("IsFailure(%q) = %v, want %v", tt.out, got, tt.want)
		}
	}
}

func TestIsHelp(t *testing.T) {
	for _, in := range []string{"help", "Help", " HELP ", "?", " ? "} {
		if !IsHelp(in) {
			t.Errorf("IsHelp(%q) = false", in)
		}
	}
	for _, in := range []string{"help me", "??", "h", ""} {
		if IsHelp(in) {
			t.Errorf("IsHelp(%q) = true", in)
		}
	}
}

func assertSameState(t *testing.T, want, got *State) {
	t.Helper()
	if !sameSet(want.Executed, got.Executed) {
		t.Errorf("executed changed: %v -> %v", want.Executed, got.Executed)
	}
	if !sameSet(want.Successful, got.Successful) {
		t.Errorf("successful changed: %v -> %v", want.Successful, got.Successful)
	}
	if !sameSet(want.Flags, got.Flags) {
		t.Errorf("flags changed: %v -> %v", want.Flags, got.Flags)
	}
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
