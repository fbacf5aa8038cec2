package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "ls -la", []string{"ls", "-la"}},
		{"single quoted", `echo 'hello world'`, []string{"echo", "hello world"}},
		{"double quoted", `echo "hello world"`, []string{"echo", "hello world"}},
		{"double quote preserves dollar literal", `echo "$HOME is home"`, []string{"echo", "$HOME is home"}},
		{"backslash escapes one char", `echo hello\ world`, []string{"echo", "hello world"}},
		{"empty", "", nil},
		{"whitespace only", "   \t  ", nil},
		{"mixed quoting", `git -C "/path with spaces" status`, []string{"git", "-C", "/path with spaces", "status"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Tokenize(c.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", c.input, err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Tokenize(%q) = %#v, want %#v", c.input, got, c.want)
			}
		})
	}
}

func TestTokenizeUnbalancedQuoting(t *testing.T) {
	for _, in := range []string{`echo "unterminated`, `echo 'unterminated`, `echo trailing\`} {
		if _, err := Tokenize(in); err != ErrUnbalancedQuoting {
			t.Errorf("Tokenize(%q) error = %v, want ErrUnbalancedQuoting", in, err)
		}
	}
}

func TestBaseCommand(t *testing.T) {
	cases := []struct {
		argv []string
		want string
	}{
		{[]string{"ls", "-la"}, "ls"},
		{[]string{"/usr/bin/ls", "-la"}, "ls"},
		{[]string{"FOO=bar", "mkfs.ext4", "/dev/sdb"}, "mkfs.ext4"},
		{[]string{"FOO=bar", "BAZ=qux", "env"}, "env"},
		{[]string{"FOO=bar"}, ""},
		{nil, ""},
	}
	for _, c := range cases {
		if got := BaseCommand(c.argv); got != c.want {
			t.Errorf("BaseCommand(%v) = %q, want %q", c.argv, got, c.want)
		}
	}
}

func TestEnvVars(t *testing.T) {
	got := EnvVars([]string{"FOO=bar", "BAZ=qux", "env"})
	want := []string{"FOO=bar", "BAZ=qux"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EnvVars = %v, want %v", got, want)
	}
	if got := EnvVars([]string{"ls", "-la"}); got != nil {
		t.Errorf("EnvVars(no assignments) = %v, want nil", got)
	}
}
