package sitepkgs

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func fakeRunner(out string, err error) Runner {
	return func(ctx context.Context, python string, args ...string) ([]byte, error) {
		return []byte(out), err
	}
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		out      string
		runErr   error
		want     string
		wantErr  bool
	}{
		{
			name:     "explicit path wins",
			explicit: "/tmp/x",
			out:      `["/usr/lib/python3/site-packages"]`,
			want:     "/tmp/x",
		},
		{
			name: "first interpreter entry",
			out:  "[\"/venv/lib/python3.12/site-packages\", \"/venv/lib/site-python\"]\n",
			want: "/venv/lib/python3.12/site-packages",
		},
		{
			name:    "empty list",
			out:     "[]",
			wantErr: true,
		},
		{
			name:    "garbage output",
			out:     "Traceback",
			wantErr: true,
		},
		{
			name:    "interpreter fails",
			runErr:  errors.New("exec: \"python3\": executable file not found in $PATH"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver("", nil)
			r.run = fakeRunner(tt.out, tt.runErr)

			got, err := r.Resolve(context.Background(), tt.explicit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolver_ExplicitSkipsInterpreter(t *testing.T) {
	r := NewResolver("", nil)
	r.run = func(ctx context.Context, python string, args ...string) ([]byte, error) {
		t.Fatal("interpreter queried despite explicit path")
		return nil, nil
	}

	if _, err := r.Resolve(context.Background(), "/does/not/exist"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
}

func TestResolver_Python(t *testing.T) {
	if got := NewResolver("", nil).Python(); got != DefaultPython {
		t.Errorf("Python() = %q, want %q", got, DefaultPython)
	}

	r := NewResolver("/opt/py/bin/python3.11", nil)
	var gotPython string
	var gotArgs []string
	r.run = func(ctx context.Context, python string, args ...string) ([]byte, error) {
		gotPython = python
		gotArgs = args
		return []byte(`["/opt/py/lib/python3.11/site-packages"]`), nil
	}

	if _, err := r.Resolve(context.Background(), ""); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if gotPython != "/opt/py/bin/python3.11" {
		t.Errorf("python = %q", gotPython)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "-c" || !strings.Contains(gotArgs[1], "getsitepackages") {
		t.Errorf("args = %v", gotArgs)
	}
}
