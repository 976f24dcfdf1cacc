// SPDX-License-Identifier: MPL-2.0

package inigrep

import (
	"errors"
	"testing"
)

func TestFromKeypath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		text           string
		requireSection bool
		requireKey     bool
		wantMode       matchMode
		wantSection    string
		wantKey        string
		wantErr        bool
	}{
		{name: "strict keypath", text: "db.host", requireSection: true, requireKey: true, wantMode: matchKeypath, wantSection: "db", wantKey: "host"},
		{name: "split on last period", text: "a.b.c", requireSection: true, requireKey: true, wantMode: matchKeypath, wantSection: "a.b", wantKey: "c"},
		{name: "loose everything", text: ".", wantMode: matchAlways},
		{name: "empty text loose", text: "", wantMode: matchAlways},
		{name: "empty text strict", text: "", requireSection: true, requireKey: true, wantErr: true},
		{name: "loose section only", text: "db.", wantMode: matchSection, wantSection: "db"},
		{name: "section only with key required", text: "db.", requireKey: true, wantErr: true},
		{name: "everything with section required", text: ".", requireSection: true, wantErr: true},
		{name: "everything with key required", text: ".", requireKey: true, wantErr: true},
		{name: "key without section strict", text: ".key", requireSection: true, requireKey: true, wantErr: true},
		{name: "key without section loose", text: ".key", wantErr: true},
		{name: "no period", text: "dbhost", wantErr: true},
		{name: "section with bracket", text: "d]b.host", wantErr: true},
		{name: "key with backslash", text: `db.ho\st`, wantErr: true},
		{name: "key with bracket", text: "db.ho[st", wantErr: true},
		{name: "key with equals", text: "db.ho=st", wantErr: true},
		{name: "loose section with bracket", text: "d]b.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cond, err := FromKeypath(tt.text, tt.requireSection, tt.requireKey)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got condition %v", tt.text, cond)
				}
				if !errors.Is(err, ErrInvalidKeypath) {
					t.Errorf("expected errors.Is(err, ErrInvalidKeypath), got %v", err)
				}
				var kpErr *KeypathError
				if !errors.As(err, &kpErr) || kpErr.Keypath != tt.text {
					t.Errorf("expected *KeypathError for %q, got %#v", tt.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cond.mode != tt.wantMode || cond.section != tt.wantSection || cond.key != tt.wantKey {
				t.Errorf("got %+v, want mode=%d section=%q key=%q", cond, tt.wantMode, tt.wantSection, tt.wantKey)
			}
		})
	}
}

func TestFromKeypathEverything(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "."} {
		cond, err := FromKeypath(text, false, false)
		if err != nil {
			t.Fatalf("FromKeypath(%q): unexpected error: %v", text, err)
		}
		if cond != Always() {
			t.Errorf("FromKeypath(%q) = %v, want Always()", text, cond)
		}
	}
}

func TestKeypathConditionMatchesExactly(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"db", "host"},
		{"a.b", "c"},
		{"section with spaces", "key-1"},
		{"x", "k_2"},
	}
	units := []Unit{
		Classify("host = 1", "db"),
		Classify("host = 1", "db2"),
		Classify("c = 1", "a.b"),
		Classify("c = 1", "a"),
		Classify("key-1 = x", "section with spaces"),
		Classify("k_2=", "x"),
		Classify("[db]", ""),
		Classify("# host = 1", "db"),
	}

	for _, p := range pairs {
		cond, err := FromKeypath(p[0]+"."+p[1], true, true)
		if err != nil {
			t.Fatalf("FromKeypath(%q): %v", p[0]+"."+p[1], err)
		}
		for _, u := range units {
			want := u.Context() == p[0] && u.Key() == p[1]
			if got := cond.Match(u); got != want {
				t.Errorf("%v.Match(%q in %q) = %v, want %v", cond, u.Line(), u.Context(), got, want)
			}
		}
	}
}

func TestFromSection(t *testing.T) {
	t.Parallel()

	cond, err := FromSection("db")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cond.Match(Classify("# any", "db")) {
		t.Error("expected section condition to match a comment in the section")
	}
	if cond.Match(Classify("k=v", "other")) {
		t.Error("expected section condition not to match another section")
	}

	for _, bad := range []string{"", "a]b"} {
		if _, err := FromSection(bad); !errors.Is(err, ErrInvalidKeypath) {
			t.Errorf("FromSection(%q): expected ErrInvalidKeypath, got %v", bad, err)
		}
	}
}

func TestFromKey(t *testing.T) {
	t.Parallel()

	cond, err := FromKey("host")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cond.Match(Classify("host = a", "x")) || !cond.Match(Classify("host = b", "y")) {
		t.Error("expected key condition to match in any section")
	}
	if cond.Match(Classify("hostname = a", "x")) {
		t.Error("expected exact key matching")
	}

	for _, bad := range []string{"", `a\b`, "a[b", "a=b"} {
		if _, err := FromKey(bad); !errors.Is(err, ErrInvalidKeypath) {
			t.Errorf("FromKey(%q): expected ErrInvalidKeypath, got %v", bad, err)
		}
	}
}

func TestAlwaysMatchesEverything(t *testing.T) {
	t.Parallel()

	var zero Condition
	for _, line := range []string{"[s]", "k=v", "# c", "junk"} {
		u := Classify(line, "s")
		if !Always().Match(u) || !zero.Match(u) {
			t.Errorf("expected Always to match %q", line)
		}
	}
}
