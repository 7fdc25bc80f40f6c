package main

import (
	"strings"
	"testing"

	"roomassistant/internal/catalog"
	"roomassistant/internal/tabs"
)

var renderTestBundle = catalog.Bundle{
	{
		Label: "Interior",
		Items: []catalog.Item{
			{Code: "shop:1", Name: "Walnut Side Table", Price: 12800, ShopName: "Wood Works"},
		},
	},
	{Label: "Zakka", Items: nil},
}

func TestRenderBundleShowsChromeForPremium(t *testing.T) {
	var out strings.Builder
	renderer := newConsoleRenderer(&out, true)

	renderer.RenderBundle(tabs.TabRandom, renderTestBundle)

	got := out.String()
	if !strings.Contains(got, "== random ==") {
		t.Fatalf("missing tab chrome:\n%s", got)
	}
	if !strings.Contains(got, "Interior (1 items)") {
		t.Fatalf("missing section heading:\n%s", got)
	}
	if !strings.Contains(got, "¥12,800") {
		t.Fatalf("price not grouped:\n%s", got)
	}
	if !strings.Contains(got, "Zakka (0 items)") {
		t.Fatalf("empty section dropped:\n%s", got)
	}
}

func TestRenderBundleHidesChromeForFree(t *testing.T) {
	var out strings.Builder
	renderer := newConsoleRenderer(&out, false)

	renderer.RenderBundle(tabs.TabRandom, renderTestBundle)

	if strings.Contains(out.String(), "== random ==") {
		t.Fatalf("chrome rendered for free view:\n%s", out.String())
	}
}

func TestRenderErrorKeepsEmbeddedNewlines(t *testing.T) {
	var out strings.Builder
	renderer := newConsoleRenderer(&out, true)

	renderer.RenderError(tabs.TabSearch, "first line\nsecond line")

	if out.String() != "first line\nsecond line\n" {
		t.Fatalf("output = %q", out.String())
	}
}
