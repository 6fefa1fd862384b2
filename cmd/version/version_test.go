/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package version

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRun_Text(t *testing.T) {
	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	t.Cleanup(func() { Cmd.SetOut(nil) })
	if err := Cmd.Flags().Set("format", "text"); err != nil {
		t.Fatal(err)
	}

	if err := run(Cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "assetpath ") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestRun_JSON(t *testing.T) {
	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	t.Cleanup(func() {
		Cmd.SetOut(nil)
		_ = Cmd.Flags().Set("format", "text")
	})
	if err := Cmd.Flags().Set("format", "json"); err != nil {
		t.Fatal(err)
	}

	if err := run(Cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if info["version"] == "" {
		t.Errorf("expected a version, got %v", info)
	}
}
