package filter

import (
	"maps"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/rowsift/internal/dataset"
)

func scenarioDataset() *dataset.Dataset {
	return dataset.New("scenario", []string{"number", "color"}, []dataset.Row{
		{"number": "4", "color": "red"},
		{"number": "7", "color": "blue"},
		{"number": "10", "color": "red"},
	})
}

func wideDataset() *dataset.Dataset {
	return dataset.New("wide", []string{"number", "color", "shape", "size"}, []dataset.Row{
		{"number": "1", "color": "red", "shape": "circle", "size": "S"},
		{"number": "2", "color": "blue", "shape": "square", "size": "M"},
		{"number": "3", "color": "red", "shape": "square", "size": "L"},
		{"number": "4", "color": "green", "shape": "circle", "size": "M"},
		{"number": "5", "color": "blue", "shape": "triangle", "size": "S"},
		{"number": "6", "color": "red", "shape": "triangle", "size": "M"},
		{"number": "x", "color": "red", "shape": "circle", "size": "L"},
	})
}

var wideColumns = []string{"color", "shape", "size"}

func numbers(rows []dataset.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Get(dataset.NumberColumn)
	}
	return out
}

func TestRecompute_EndToEndScenario(t *testing.T) {
	engine := NewEngine(scenarioDataset(), []string{"color"})
	sel := NewSelection([]string{"color"}).With("color", []string{"red"})
	mod := Modulo{}

	res := engine.Recompute(sel, mod)
	if diff := cmp.Diff([]string{"4", "10"}, numbers(res.Rows)); diff != "" {
		t.Fatalf("color=red view mismatch (-want +got):\n%s", diff)
	}

	mod = mod.WithBase(3)
	if got := mod.Remainders(); len(got) != 0 {
		t.Fatalf("remainders after base change = %v, want empty", got)
	}
	res = engine.Recompute(sel, mod)
	if diff := cmp.Diff([]string{"4", "10"}, numbers(res.Rows)); diff != "" {
		t.Fatalf("vacuous base view mismatch (-want +got):\n%s", diff)
	}

	res = engine.Recompute(sel, mod.WithRemainders([]string{"1"}))
	if diff := cmp.Diff([]string{"4", "10"}, numbers(res.Rows)); diff != "" {
		t.Fatalf("remainder 1 view mismatch (-want +got):\n%s", diff)
	}

	res = engine.Recompute(sel, mod.WithRemainders([]string{"0"}))
	if res.Len() != 0 {
		t.Fatalf("remainder 0 view = %v, want empty", numbers(res.Rows))
	}
}

func TestRecompute_UnrestrictedIdentity(t *testing.T) {
	ds := wideDataset()
	engine := NewEngine(ds, wideColumns)

	res := engine.Recompute(NewSelection(wideColumns), Modulo{})

	if diff := cmp.Diff(ds.Rows(), res.Rows); diff != "" {
		t.Errorf("unrestricted view mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6}, res.Indices); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}

	schema, err := dataset.Discover(ds, dataset.DiscoverOptions{})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if diff := cmp.Diff(CatalogFromDistinct(schema.Distinct), res.Catalog); diff != "" {
		t.Errorf("unrestricted catalog should equal discovery catalog (-want +got):\n%s", diff)
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	engine := NewEngine(wideDataset(), wideColumns)
	sel := NewSelection(wideColumns).
		With("color", []string{"red", "blue"}).
		With("size", []string{"M"})
	mod := Modulo{}.WithBase(2).WithRemainders([]string{"0"})

	first := engine.Recompute(sel, mod)
	second := engine.Recompute(sel, mod)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("recompute not idempotent (-first +second):\n%s", diff)
	}
}

func TestRecompute_ColumnFilters(t *testing.T) {
	engine := NewEngine(wideDataset(), wideColumns)

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{
			name: "single value",
			sel:  NewSelection(wideColumns).With("color", []string{"blue"}),
			want: []string{"2", "5"},
		},
		{
			name: "multiple values are ORed",
			sel:  NewSelection(wideColumns).With("color", []string{"blue", "green"}),
			want: []string{"2", "4", "5"},
		},
		{
			name: "columns are ANDed",
			sel: NewSelection(wideColumns).
				With("color", []string{"red"}).
				With("shape", []string{"circle"}),
			want: []string{"1", "x"},
		},
		{
			name: "value absent from data",
			sel:  NewSelection(wideColumns).With("color", []string{"purple"}),
			want: []string{},
		},
		{
			name: "cleared column is unrestricted",
			sel:  NewSelection(wideColumns).With("color", []string{"red"}).With("color", nil),
			want: []string{"1", "2", "3", "4", "5", "6", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Recompute(tt.sel, Modulo{})
			if diff := cmp.Diff(tt.want, numbers(res.Rows)); diff != "" {
				t.Errorf("view mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecompute_SelfExclusion(t *testing.T) {
	engine := NewEngine(wideDataset(), wideColumns)
	base := NewSelection(wideColumns).With("shape", []string{"square", "triangle"})

	want := engine.Recompute(base, Modulo{}).Catalog.Options("color")

	for _, colors := range [][]string{nil, {"red"}, {"blue"}, {"red", "green"}, {"nope"}} {
		got := engine.Recompute(base.With("color", colors), Modulo{}).Catalog.Options("color")
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("color options changed when selecting %v (-want +got):\n%s", colors, diff)
		}
	}
}

func TestRecompute_CatalogNarrowedByOtherColumns(t *testing.T) {
	engine := NewEngine(wideDataset(), wideColumns)
	sel := NewSelection(wideColumns).
		With("color", []string{"red"}).
		With("size", []string{"M"})

	res := engine.Recompute(sel, Modulo{})

	want := Catalog{
		// shape options: rows with color=red and size=M
		"shape": OptionsOf([]string{"triangle"}),
		// color options: rows with size=M (color ignored)
		"color": OptionsOf([]string{"blue", "green", "red"}),
		// size options: rows with color=red (size ignored)
		"size": OptionsOf([]string{"L", "M", "S"}),
	}
	if diff := cmp.Diff(want, res.Catalog); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"6"}, numbers(res.Rows)); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestRecompute_ModuloVacuity(t *testing.T) {
	engine := NewEngine(wideDataset(), wideColumns)
	sel := NewSelection(wideColumns).With("color", []string{"red"})

	without := engine.Recompute(sel, Modulo{})
	vacuous := engine.Recompute(sel, Modulo{}.WithBase(7))

	if diff := cmp.Diff(without, vacuous); diff != "" {
		t.Errorf("active base without remainders should not restrict (-want +got):\n%s", diff)
	}
}

func TestRecompute_ModuloExcludesNonNumeric(t *testing.T) {
	engine := NewEngine(wideDataset(), wideColumns)
	mod := Modulo{}.WithBase(2).WithRemainders([]string{"0", "1"})

	res := engine.Recompute(NewSelection(wideColumns), mod)

	if diff := cmp.Diff([]string{"1", "2", "3", "4", "5", "6"}, numbers(res.Rows)); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestRecompute_ModuloDoesNotNarrowOptionsByDefault(t *testing.T) {
	mod := Modulo{}.WithBase(3).WithRemainders([]string{"0"}) // numbers 3 and 6

	plain := NewEngine(wideDataset(), wideColumns).Recompute(NewSelection(wideColumns), mod)
	if diff := cmp.Diff(OptionsOf([]string{"blue", "green", "red"}), plain.Catalog.Options("color")); diff != "" {
		t.Errorf("default color options mismatch (-want +got):\n%s", diff)
	}

	narrowing := NewEngine(wideDataset(), wideColumns, WithModuloNarrowsOptions(true)).
		Recompute(NewSelection(wideColumns), mod)
	if diff := cmp.Diff(OptionsOf([]string{"red"}), narrowing.Catalog.Options("color")); diff != "" {
		t.Errorf("narrowing color options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(numbers(plain.Rows), numbers(narrowing.Rows)); diff != "" {
		t.Errorf("option narrowing must not change the view (-plain +narrowing):\n%s", diff)
	}
}

func TestRecompute_DoesNotMutateInputs(t *testing.T) {
	ds := wideDataset()
	snapshot := make([]dataset.Row, ds.Len())
	for i, row := range ds.Rows() {
		snapshot[i] = maps.Clone(row)
	}
	engine := NewEngine(ds, wideColumns)
	sel := NewSelection(wideColumns).With("color", []string{"red"})
	mod := Modulo{}.WithBase(2).WithRemainders([]string{"1"})

	_ = engine.Recompute(sel, mod)

	if diff := cmp.Diff(snapshot, ds.Rows()); diff != "" {
		t.Errorf("dataset rows modified (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"red"}, sel.Values("color")); diff != "" {
		t.Errorf("selection modified (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1"}, mod.Remainders()); diff != "" {
		t.Errorf("modulo modified (-want +got):\n%s", diff)
	}
}

func TestCatalog_Contains(t *testing.T) {
	c := Catalog{"color": OptionsOf([]string{"blue", "green", "red"})}

	if !c.Contains("color", "green") {
		t.Error("Contains(color, green) = false, want true")
	}
	if c.Contains("color", "purple") {
		t.Error("Contains(color, purple) = true, want false")
	}
	if c.Contains("shape", "circle") {
		t.Error("Contains on unknown column should be false")
	}
}

func TestEngine_Columns(t *testing.T) {
	cols := []string{"a", "b"}
	engine := NewEngine(scenarioDataset(), cols)
	cols[0] = "mutated"

	if diff := cmp.Diff([]string{"a", "b"}, engine.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
}
