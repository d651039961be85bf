package chart

import (
	"bytes"
	"testing"

	"thuchi/internal/core"
)

func TestRenderPieProducesPNG(t *testing.T) {
	totals := []core.CategoryTotal{
		{DanhMuc: "Ăn uống", Total: -70000, Percent: 70},
		{DanhMuc: "Di chuyển", Total: -28000, Percent: 28},
		{DanhMuc: "Khác", Total: -2000, Percent: 2}, // below threshold, omitted
	}

	png, err := NewRenderer().RenderPie(totals)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("expected PNG bytes")
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG, starts with % x", png[:4])
	}
}

func TestRenderPieNoSlices(t *testing.T) {
	totals := []core.CategoryTotal{
		{DanhMuc: "Khác", Total: -100, Percent: 1},
	}
	png, err := NewRenderer().RenderPie(totals)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if png != nil {
		t.Fatal("expected no chart when every category is below threshold")
	}
}
