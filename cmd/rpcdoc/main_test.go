package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Zachacious/go-rpcdoc/internal/analyzer"
	"github.com/Zachacious/go-rpcdoc/internal/config"
	"github.com/Zachacious/go-rpcdoc/internal/logger"
)

func TestApplyFlags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--format", "json", "--depth", "0", "--manifest", "extra.yaml", "--method-names", "lowerFirst"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Manifests = []string{"base.yaml"}
	var f flags
	f.format = "json"
	f.depth = 0
	f.manifests = []string{"extra.yaml"}
	f.accessorPrefix = "Fetch"
	f.methodNames = "lowerFirst"
	applyFlags(cmd, cfg, &f)

	if cfg.Format != "json" || cfg.MaxDepth != 0 {
		t.Errorf("format/depth not applied: %+v", cfg)
	}
	if cfg.MethodNames != config.MethodNamesLowerFirst {
		t.Errorf("methodNames = %s", cfg.MethodNames)
	}
	if cfg.AccessorPrefix != "Get" {
		t.Errorf("unchanged flag overrode accessorPrefix: %s", cfg.AccessorPrefix)
	}
	if len(cfg.Manifests) != 2 || cfg.Manifests[1] != "extra.yaml" {
		t.Errorf("manifests = %v", cfg.Manifests)
	}
}

func TestConfigSchemaCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config-schema"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	var schema map[string]any
	if err := json.Unmarshal(out.Bytes(), &schema); err != nil {
		t.Fatalf("invalid json schema: %v", err)
	}
	if _, ok := schema["properties"]; !ok {
		t.Errorf("schema has no properties: %s", out.String())
	}
}

type Owner struct {
	Name string `json:"name"`
}

type OwnerService struct{}

func (*OwnerService) Find(id int) (*Owner, error) { return nil, nil }

// Types declared in package main have the import path "main".
func TestRuntimeResolverInMainPackage(t *testing.T) {
	b := analyzer.NewBuilder(analyzer.WithLogger(logger.Nop()))
	if _, err := b.Add(&OwnerService{}); err != nil {
		t.Fatal(err)
	}

	find, ok := b.GetAll()["ownerService"]["Find"]
	if !ok {
		t.Fatalf("ownerService.Find missing from %v", b.GetAll())
	}
	if !find.Result.Type.IsObject() {
		t.Fatalf("Find result = %q, want an expanded object", find.Result.Type.Name)
	}
	if got := find.Result.Type.String(); got != "{name: string}" {
		t.Errorf("Find result = %s, want {name: string}", got)
	}
	if !find.Result.AllowNull {
		t.Errorf("pointer result must allow null")
	}
}
