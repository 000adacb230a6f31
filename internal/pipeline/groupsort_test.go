package pipeline

import (
	"slices"
	"testing"
)

func newRecord(meta Metadata) Record {
	return Record{Metadata: meta, Example: Example{"p x"}}
}

func recordKeys(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Metadata.String("section") + "/" + r.Title()
	}
	return out
}

func TestGroupSort(t *testing.T) {
	t.Parallel()

	records := []Record{
		newRecord(Metadata{"section": "B", "title": "a"}),
		newRecord(Metadata{"section": "A", "title": "z"}),
		newRecord(Metadata{"section": "A", "title": "a"}),
	}

	groups := GroupSort(records, "section", []string{"section", "title"})

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Name != "A" || groups[1].Name != "B" {
		t.Errorf("group names = %q, %q; want A, B", groups[0].Name, groups[1].Name)
	}
	if got, want := recordKeys(groups[0].Records), []string{"A/a", "A/z"}; !slices.Equal(got, want) {
		t.Errorf("group A = %v, want %v", got, want)
	}
	if got, want := recordKeys(groups[1].Records), []string{"B/a"}; !slices.Equal(got, want) {
		t.Errorf("group B = %v, want %v", got, want)
	}

	if got := recordKeys(records); !slices.Equal(got, []string{"B/a", "A/z", "A/a"}) {
		t.Errorf("input order changed: %v", got)
	}
}

func TestGroupSort_Ordering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records []Record
		sortBy  []string
		want    []string
	}{
		{
			name: "stable on equal keys",
			records: []Record{
				newRecord(Metadata{"section": "S", "title": "first"}),
				newRecord(Metadata{"section": "S", "title": "second"}),
				newRecord(Metadata{"section": "S", "title": "third"}),
			},
			sortBy: []string{"section"},
			want:   []string{"S/first", "S/second", "S/third"},
		},
		{
			name: "missing key sorts lowest",
			records: []Record{
				newRecord(Metadata{"section": "S", "title": "b"}),
				newRecord(Metadata{"section": "S"}),
				newRecord(Metadata{"section": "S", "title": "a"}),
				newRecord(Metadata{"section": "S", "title": nil}),
			},
			sortBy: []string{"title"},
			want:   []string{"S/", "S/", "S/a", "S/b"},
		},
		{
			name: "numbers compare numerically",
			records: []Record{
				newRecord(Metadata{"title": "ten", "order": uint64(10)}),
				newRecord(Metadata{"title": "two", "order": 2}),
				newRecord(Metadata{"title": "half", "order": 0.5}),
			},
			sortBy: []string{"order"},
			want:   []string{"/half", "/two", "/ten"},
		},
		{
			name: "kinds order bool, number, string",
			records: []Record{
				newRecord(Metadata{"title": "s", "k": "a"}),
				newRecord(Metadata{"title": "n", "k": 1}),
				newRecord(Metadata{"title": "t", "k": true}),
				newRecord(Metadata{"title": "f", "k": false}),
			},
			sortBy: []string{"k"},
			want:   []string{"/f", "/t", "/n", "/s"},
		},
		{
			name: "no sort keys keeps extraction order",
			records: []Record{
				newRecord(Metadata{"title": "2"}),
				newRecord(Metadata{"title": "1"}),
			},
			want: []string{"/2", "/1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			groups := GroupSort(tt.records, "none", tt.sortBy)
			if len(groups) != 1 {
				t.Fatalf("got %d groups, want 1", len(groups))
			}
			if got := recordKeys(groups[0].Records); !slices.Equal(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupSort_Grouping(t *testing.T) {
	t.Parallel()

	records := []Record{
		newRecord(Metadata{"section": "Forms", "title": "Input"}),
		newRecord(Metadata{"title": "Loose"}),
		newRecord(Metadata{"section": 2, "title": "Numbered"}),
		newRecord(Metadata{"section": "Buttons", "title": "Primary"}),
		newRecord(Metadata{"section": "Forms", "title": "Checkbox"}),
	}

	groups := GroupSort(records, "section", []string{"section", "title"})

	var names []string
	for _, g := range groups {
		names = append(names, g.Name)
	}
	want := []string{"", "2", "Buttons", "Forms"}
	if !slices.Equal(names, want) {
		t.Fatalf("group names = %q, want %q", names, want)
	}
	if got := recordKeys(groups[3].Records); !slices.Equal(got, []string{"Forms/Checkbox", "Forms/Input"}) {
		t.Errorf("Forms = %v", got)
	}

	total := 0
	for _, g := range groups {
		total += len(g.Records)
	}
	if total != len(records) {
		t.Errorf("groups hold %d records, want %d", total, len(records))
	}
}

func TestGroupSort_Empty(t *testing.T) {
	t.Parallel()

	if groups := GroupSort(nil, "section", []string{"title"}); len(groups) != 0 {
		t.Errorf("GroupSort(nil) = %v, want no groups", groups)
	}
}
