package yamlcore

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/yamlcore/go-yamlcore/ir"
)

var roundTripCorpus = []string{
	`server:
  host: localhost
  ports:
    - 8080
    - 8443
  tls: true
  timeout: 2.5
labels:
  env: prod
  "true": quoted key
`,
	`- name: build
  steps:
    - run: make
    - run: make test
      env:
        CI: "1"
- name: deploy
  when: ~
`,
	`defaults: &d
  retries: 3
  backoff: 0.5
jobs:
  one: *d
  two: *d
`,
	`text: |
  first line
  second line

  fourth line
shape: !rect
  w: 3
  h: 4
`,
	`---
a: 1
---
- 2
- 3
---
`,
}

func diffText(a, b string) string {
	dmp := diffmatchpatch.New()
	return dmp.DiffPrettyText(dmp.DiffMain(a, b, false))
}

// TestRoundTripStable checks that one load/emit pass reaches a fixed
// point: emitting a reloaded document reproduces the emitted text, and
// the value trees agree.
func TestRoundTripStable(t *testing.T) {
	for _, src := range roundTripCorpus {
		docs, err := LoadString(src)
		if err != nil {
			t.Errorf("load %q: %v", src, err)
			continue
		}
		out, err := EmitDocuments(docs)
		if err != nil {
			t.Errorf("emit %q: %v", src, err)
			continue
		}
		again, err := LoadString(out)
		if err != nil {
			t.Errorf("reload of %q failed: %v\nemitted:\n%s", src, err, out)
			continue
		}
		if len(again) != len(docs) {
			t.Errorf("reload of %q: %d documents, want %d", src, len(again), len(docs))
			continue
		}
		for i := range docs {
			if !ir.Equal(docs[i], again[i]) {
				t.Errorf("document %d of %q changed across a round trip", i, src)
			}
		}
		out2, err := EmitDocuments(again)
		if err != nil {
			t.Errorf("second emit of %q: %v", src, err)
			continue
		}
		if out != out2 {
			t.Errorf("emit not stable for %q:\n%s", src, diffText(out, out2))
		}
	}
}

func TestLoadReaderFacade(t *testing.T) {
	docs, err := LoadReader(strings.NewReader("\xef\xbb\xbfa: 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := docs[0].Get("a").AsInt(); v != 1 {
		t.Errorf("got %+v", docs[0])
	}
}

func TestEmitStringFacade(t *testing.T) {
	out, err := EmitString(ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("a"), Val: ir.FromInt(1)},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if out != "---\na: 1\n" {
		t.Errorf("got %q", out)
	}
}
