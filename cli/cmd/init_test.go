package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/iconf/ini"
)

type initCLI struct {
	Log struct {
		Level  string `default:"info"`
		Pretty bool   `default:"true"`
	} `embed:"" prefix:"log-"`

	Source []string `default:"a.ini,b.ini"`
	Note   string   `default:"a=b"`
	Strict bool
}

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string) // setup function to prepare test
		wantErr bool
	}{
		{
			name:    "create_new_config",
			force:   false,
			setup:   nil, // no pre-existing file
			wantErr: false,
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: false,
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: true, // should fail because file exists
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.ini")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli initCLI

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			err = (&Init{Force: tt.force}).Run(ctx)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Init.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			doc, err := ini.ParseString(ctx, confPath, string(content))
			if err != nil {
				t.Fatalf("generated config is not valid INI: %v", err)
			}

			want := map[string]map[string]string{
				SectionLog:    {"level": "info", "pretty": "true"},
				SectionGlobal: {"source": "a.ini,b.ini", "strict": "false"},
			}

			for section, items := range want {
				for item, value := range items {
					if got := doc.Sections[section][item]; got != value {
						t.Errorf("[%s] %s = %q, want %q", section, item, got, value)
					}
				}
			}

			if _, ok := doc.Sections[SectionGlobal]["note"]; ok {
				t.Error("value that is not a single token must be skipped")
			}

			if _, ok := doc.Sections[SectionGlobal]["help"]; ok {
				t.Error("help flag must be skipped")
			}
		})
	}
}
