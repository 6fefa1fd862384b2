/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package types

import (
	"bytes"
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/assetpath/mediatype"
	"bennypowers.dev/assetpath/testutil"
)

func TestWrite_YAML(t *testing.T) {
	reg := mediatype.Default()
	var buf bytes.Buffer
	if err := Write(&buf, reg, "yaml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var d Dump
	if err := yaml.Unmarshal(buf.Bytes(), &d); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if len(d.Types) != len(reg.Entries()) {
		t.Errorf("expected %d types, got %d", len(reg.Entries()), len(d.Types))
	}
	if d.Types[0].Type != mediatype.JavaScript || d.Types[0].Extensions[0] != ".js" {
		t.Errorf("unexpected first type %+v", d.Types[0])
	}
	if d.Engines[0].Extension != ".coffee" || d.Engines[0].Type != "application/javascript" {
		t.Errorf("unexpected first engine %+v", d.Engines[0])
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, mediatype.Default(), "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var d Dump
	if err := json.Unmarshal(buf.Bytes(), &d); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	var erb *EngineEntry
	for i := range d.Engines {
		if d.Engines[i].Extension == ".erb" {
			erb = &d.Engines[i]
		}
	}
	if erb == nil || erb.Type != "" {
		t.Errorf("expected a pass-through .erb engine, got %+v", erb)
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, mediatype.Default(), "text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goldenPath := "golden/types.txt"
	testutil.UpdateGoldenFile(t, goldenPath, buf.Bytes())

	expected := testutil.LoadFixtureFile(t, goldenPath)
	if buf.String() != string(expected) {
		t.Errorf("output mismatch.\nExpected:\n%s\nGot:\n%s", expected, buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, mediatype.Default(), "toml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
