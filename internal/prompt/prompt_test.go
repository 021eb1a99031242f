package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

type recordingSound struct {
	played []string
}

func (r *recordingSound) Play(name string)      { r.played = append(r.played, name) }
func (r *recordingSound) PlayAsync(name string) { r.played = append(r.played, name) }

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestYesNo(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		def     Default
		want    bool
		prompts int
	}{
		{name: "yes", input: "y\n", def: DefaultNone, want: true, prompts: 1},
		{name: "full yes mixed case", input: "  YeS \n", def: DefaultNone, want: true, prompts: 1},
		{name: "no", input: "n\n", def: DefaultYes, want: false, prompts: 1},
		{name: "full no", input: "no\n", def: DefaultNone, want: false, prompts: 1},
		{name: "empty takes default yes", input: "\n", def: DefaultYes, want: true, prompts: 1},
		{name: "empty takes default no", input: "\n", def: DefaultNo, want: false, prompts: 1},
		{name: "empty without default asks again", input: "\n\ny\n", def: DefaultNone, want: true, prompts: 3},
		{name: "garbage asks again", input: "maybe\nn\n", def: DefaultYes, want: false, prompts: 2},
		{name: "last line without newline", input: "y", def: DefaultNone, want: true, prompts: 1},
		{name: "closed input without default", input: "", def: DefaultNone, want: false, prompts: 1},
		{name: "closed input with default", input: "", def: DefaultYes, want: true, prompts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompter(tt.input)

			got := p.YesNo("", tt.def)

			if got != tt.want {
				t.Errorf("YesNo() = %v, want %v", got, tt.want)
			}
			question := "Yes or no? " + tt.def.Suffix() + ": "
			if n := strings.Count(out.String(), question); n != tt.prompts {
				t.Errorf("prompted %d times, want %d\n%s", n, tt.prompts, out.String())
			}
		})
	}
}

func TestDefaultSuffix(t *testing.T) {
	tests := map[Default]string{
		DefaultNone: "[y/n]",
		DefaultYes:  "[Y/n]",
		DefaultNo:   "[y/N]",
	}
	for def, want := range tests {
		if got := def.Suffix(); got != want {
			t.Errorf("Default(%d).Suffix() = %q, want %q", def, got, want)
		}
	}
}

func TestYesNo_CustomText(t *testing.T) {
	p, out := newTestPrompter("y\n")

	p.YesNo("Download it now?", DefaultNo)

	if !strings.Contains(out.String(), "Download it now? [y/N]: ") {
		t.Errorf("output = %q", out.String())
	}
}

func TestYesNo_PlaysSelectOnAnswer(t *testing.T) {
	p, _ := newTestPrompter("x\nn\n")
	sound := &recordingSound{}
	p.Sound = sound

	p.YesNo("", DefaultNone)

	if len(sound.played) != 1 || sound.played[0] != "select" {
		t.Errorf("played %v, want [select]", sound.played)
	}
}

func TestWaitForKey_ReadsOneLine(t *testing.T) {
	p, out := newTestPrompter("\nn\n")

	if err := p.WaitForKey("Press any key to exit..."); err != nil {
		t.Fatalf("WaitForKey() error = %v", err)
	}

	if out.String() != "Press any key to exit...\n" {
		t.Errorf("output = %q", out.String())
	}
	// The next answer must still be readable
	if p.YesNo("", DefaultNone) {
		t.Error("WaitForKey() consumed more than one line")
	}
}

func TestWaitForKey_NoText(t *testing.T) {
	p, out := newTestPrompter("")

	p.WaitForKey("")

	if out.Len() != 0 {
		t.Errorf("output = %q, want nothing", out.String())
	}
}

func TestWaitForKey_ClosedInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "nothing left", input: "", wantErr: true},
		{name: "key without newline", input: "x", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(tt.input)

			err := p.WaitForKey("")

			if (err != nil) != tt.wantErr {
				t.Fatalf("WaitForKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, io.EOF) {
				t.Errorf("WaitForKey() error = %v, want io.EOF", err)
			}
		})
	}
}

func TestMenu(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
		retries int
	}{
		{name: "first", input: "1\n", want: 0},
		{name: "last", input: "3\n", want: 2},
		{name: "out of range then valid", input: "0\n4\n2\n", want: 1, retries: 2},
		{name: "not a number", input: "two\n2\n", want: 1, retries: 1},
		{name: "input closed", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompter(tt.input)

			got, err := p.Menu("Which version?", []string{"Original", "Multipatch", "Steam/GOG"})

			if (err != nil) != tt.wantErr {
				t.Fatalf("Menu() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Menu() = %d, want %d", got, tt.want)
			}
			if n := strings.Count(out.String(), "Invalid choice"); n != tt.retries {
				t.Errorf("re-prompted %d times, want %d", n, tt.retries)
			}
			if !strings.Contains(out.String(), "  2. Multipatch") {
				t.Errorf("options not listed:\n%s", out.String())
			}
		})
	}
}

func TestMenu_NoOptions(t *testing.T) {
	p, _ := newTestPrompter("1\n")

	if _, err := p.Menu("Nothing", nil); err == nil {
		t.Error("Menu() with no options should fail")
	}
}
